package ports

import (
	"context"

	"github.com/resourcehub/resource-api/internal/core/domain"
)

// Identity is the authenticated principal threaded explicitly into every
// use-case call. There is no ambient "current user"; handlers extract the
// identity from the verified token and pass it down.
type Identity struct {
	ID       string
	Username string
	Role     domain.Role
}

// CreateResourceInput carries the client-writable fields of a new resource.
// The owner is stamped from the caller identity, never from the payload.
type CreateResourceInput struct {
	Name        string
	Description string
}

// ResourceService defines use-case operations on the resource collection.
// Callers invoke these only after the authorization gate has allowed the
// action; the service stamps ownership, records audit events, and talks to
// the store.
type ResourceService interface {
	List(ctx context.Context, ident Identity) ([]*domain.Resource, error)
	Get(ctx context.Context, ident Identity, id string) (*domain.Resource, error)
	Create(ctx context.Context, ident Identity, in CreateResourceInput) (*domain.Resource, error)
	Update(ctx context.Context, ident Identity, id string, update ResourceUpdate) (*domain.Resource, error)
	Delete(ctx context.Context, ident Identity, id string) error
}
