package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
)

// RevocationStore abstracts the refresh-token denylist (Redis). A refresh
// token is single-use: its jti is revoked the moment it is exchanged.
type RevocationStore interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService implements registration, login, and refresh-token rotation.
type AuthService struct {
	repo        ports.UserRepository
	revocations RevocationStore
	jwtSecret   string
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, revocations RevocationStore, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		repo:        repo,
		revocations: revocations,
		jwtSecret:   jwtSecret,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Register creates a new account. The role is always RoleUser: callers
// cannot grant themselves anything else, role changes happen out of band.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues an access/refresh token pair.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.Active {
		return nil, nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Refresh exchanges a valid refresh token for a new token pair. The used
// token's jti is denylisted until its natural expiry, so replaying it fails.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return nil, domain.ErrUnauthenticated
	}

	jti, _ := claims["jti"].(string)
	sub, _ := claims["sub"].(string)
	if jti == "" || sub == "" {
		return nil, domain.ErrUnauthenticated
	}

	revoked, err := s.revocations.IsRevoked(ctx, jti)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.repo.FindByID(ctx, sub)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.Active {
		return nil, domain.ErrUnauthenticated
	}

	if err := s.revocations.Revoke(ctx, jti, ttlUntilExpiry(claims, s.refreshTTL)); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Me returns the caller's own identity projection.
func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) issueTokens(user *domain.User) (*ports.TokenPair, error) {
	now := time.Now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"active":   user.Active,
		"typ":      "access",
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	})
	accessStr, err := access.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID,
		"jti": newTokenID(),
		"typ": "refresh",
		"iat": now.Unix(),
		"exp": now.Add(s.refreshTTL).Unix(),
	})
	refreshStr, err := refresh.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.TokenPair{Access: accessStr, Refresh: refreshStr}, nil
}

// newTokenID returns a random 128-bit token id in hex.
func newTokenID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%x", time.Now().UnixNano())
	}
	return fmt.Sprintf("%x", b)
}

// ttlUntilExpiry derives the denylist TTL from the token's exp claim so the
// entry lives exactly as long as the token could still be replayed.
func ttlUntilExpiry(claims jwt.MapClaims, fallback time.Duration) time.Duration {
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return fallback
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
