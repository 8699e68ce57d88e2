package ports

import (
	"context"

	"github.com/university/admin-system/internal/core/domain"
)

// CourseInput carries the writable fields of a course record.
type CourseInput struct {
	Name       string
	Room       string
	Instructor string
	Day        string
	StartTime  string
	EndTime    string
}

// CourseService defines use-case operations for courses.
type CourseService interface {
	List(ctx context.Context) ([]*domain.Course, error)
	Get(ctx context.Context, id string) (*domain.Course, error)
	Create(ctx context.Context, actor string, input CourseInput) (*domain.Course, error)
	Update(ctx context.Context, actor, id string, input CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor, id string) error
}
