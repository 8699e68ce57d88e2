package ports

import (
	"context"

	"github.com/university/admin-system/internal/core/domain"
)

// StudentInput carries the writable fields of a student record.
type StudentInput struct {
	LastName  string
	FirstName string
	CIN       string
	Email     string
	Phone     string
	Level     string
	Gender    string
	BirthDate string
}

// StudentService defines use-case operations for students. Actor identifies
// the authenticated user performing the mutation, for the audit trail.
type StudentService interface {
	List(ctx context.Context) ([]*domain.Student, error)
	Get(ctx context.Context, id string) (*domain.Student, error)
	GetByCIN(ctx context.Context, cin string) (*domain.Student, error)
	Create(ctx context.Context, actor string, input StudentInput) (*domain.Student, error)
	Update(ctx context.Context, actor, id string, input StudentInput) (*domain.Student, error)
	UpdateByCIN(ctx context.Context, actor, cin string, input StudentInput) (*domain.Student, error)
	Delete(ctx context.Context, actor, id string) error
	DeleteByCIN(ctx context.Context, actor, cin string) error
}
