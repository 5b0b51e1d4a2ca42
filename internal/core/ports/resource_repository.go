package ports

import (
	"context"

	"github.com/resourcehub/resource-api/internal/core/domain"
)

// ResourceUpdate carries the mutable fields of a resource. Nil fields are
// left untouched, which lets the same type serve full and partial updates.
// created_at and created_by are immutable and have no place here.
type ResourceUpdate struct {
	Name        *string
	Description *string
}

// ResourceRepository defines persistence operations for resources.
type ResourceRepository interface {
	Create(ctx context.Context, r *domain.Resource) (*domain.Resource, error)
	FindByID(ctx context.Context, id string) (*domain.Resource, error)
	List(ctx context.Context) ([]*domain.Resource, error)
	// Update applies the non-nil fields and bumps updated_at.
	Update(ctx context.Context, id string, update ResourceUpdate) (*domain.Resource, error)
	Delete(ctx context.Context, id string) error
}
