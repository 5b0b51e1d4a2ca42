package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

const resourcesCollection = "resources"

type ResourceRepository struct {
	coll *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{coll: db.Collection(resourcesCollection)}
}

type mongoResource struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
	CreatedBy   string             `bson:"created_by"`
}

func (r *ResourceRepository) Create(ctx context.Context, resource *domain.Resource) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoResource{
		Name:        resource.Name,
		Description: resource.Description,
		CreatedAt:   resource.CreatedAt,
		UpdatedAt:   resource.UpdatedAt,
		CreatedBy:   resource.CreatedBy,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}

	created := *resource
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	var mr mongoResource
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("find resource: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer cursor.Close(ctx)

	var resources []*domain.Resource
	for cursor.Next(ctx) {
		var mr mongoResource
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode resource: %w", err)
		}
		resources = append(resources, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// Update applies the non-nil fields and bumps updated_at. created_at and
// created_by are never part of the update document.
func (r *ResourceRepository) Update(ctx context.Context, id string, update ports.ResourceUpdate) (*domain.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrResourceNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}

	var mr mongoResource
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mr)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return mr.toDomain(), nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrResourceNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list and audit queries rely on.
func (r *ResourceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (mr mongoResource) toDomain() *domain.Resource {
	return &domain.Resource{
		ID:          mr.ID.Hex(),
		Name:        mr.Name,
		Description: mr.Description,
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
		CreatedBy:   mr.CreatedBy,
	}
}
