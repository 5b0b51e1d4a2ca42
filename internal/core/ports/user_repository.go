package ports

import (
	"context"

	"github.com/resourcehub/resource-api/internal/core/domain"
)

// UserRepository defines the interface for identity persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
