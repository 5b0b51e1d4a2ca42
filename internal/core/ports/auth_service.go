package ports

import (
	"context"

	"github.com/resourcehub/resource-api/internal/core/domain"
)

// RegisterInput carries the fields a caller may supply at registration.
// Role is deliberately absent: every new account starts as RoleUser.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// TokenPair is returned on login and refresh. Access is short-lived and
// carries the identity claims; Refresh is longer-lived and single-use.
type TokenPair struct {
	Access  string
	Refresh string
}

// AuthService implements registration, login, and token refresh.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}
