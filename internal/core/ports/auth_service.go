package ports

import (
	"context"
	"time"

	"github.com/university/admin-system/internal/core/domain"
)

// RegisterInput carries all data needed to create a new account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// UpdatePasswordInput carries the password-change form fields.
type UpdatePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AuthResult is returned after a successful login.
type AuthResult struct {
	Token     string
	TokenType string // always "Bearer"
	ExpiresIn int64  // token validity in milliseconds
	User      *domain.User
}

// AuthService defines the authentication use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, username string, input UpdatePasswordInput) error
	// Logout revokes the given bearer token until its natural expiry.
	Logout(ctx context.Context, token string, expiresAt time.Time) error
}

// TokenBlacklist revokes bearer tokens after logout.
type TokenBlacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
