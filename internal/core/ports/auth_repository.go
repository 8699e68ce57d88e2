package ports

import (
	"context"

	"github.com/university/admin-system/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// UpdatePassword replaces the stored password hash for username.
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	// TouchLastLogin records a successful login timestamp.
	TouchLastLogin(ctx context.Context, username string) error
}
