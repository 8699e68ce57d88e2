package ports

import (
	"context"

	"github.com/university/admin-system/internal/core/domain"
)

// StudentRepository defines persistence operations for students.
type StudentRepository interface {
	Create(ctx context.Context, s *domain.Student) (*domain.Student, error)
	FindByID(ctx context.Context, id string) (*domain.Student, error)
	FindByCIN(ctx context.Context, cin string) (*domain.Student, error)
	// List returns all students ordered by creation time.
	List(ctx context.Context) ([]*domain.Student, error)
	Update(ctx context.Context, id string, s *domain.Student) (*domain.Student, error)
	UpdateByCIN(ctx context.Context, cin string, s *domain.Student) (*domain.Student, error)
	Delete(ctx context.Context, id string) error
	DeleteByCIN(ctx context.Context, cin string) error
}
