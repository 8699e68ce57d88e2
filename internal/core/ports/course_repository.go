package ports

import (
	"context"

	"github.com/university/admin-system/internal/core/domain"
)

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]*domain.Course, error)
	Update(ctx context.Context, id string, c *domain.Course) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}
