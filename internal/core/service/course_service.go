package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

// CourseService implements CRUD over the courses collection.
type CourseService struct {
	repo   ports.CourseRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, audit ports.AuditRecorder, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, audit: audit, logger: logger}
}

func (s *CourseService) List(ctx context.Context) ([]*domain.Course, error) {
	return s.repo.List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id string) (*domain.Course, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, actor string, input ports.CourseInput) (*domain.Course, error) {
	now := time.Now().UTC()
	course := inputToCourse(input)
	course.CreatedAt = now
	course.UpdatedAt = now

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Str("course", input.Name).Msg("failed to create course")
		return nil, err
	}

	s.logger.Info().Str("course_id", created.ID).Str("course", created.Name).Msg("course created")
	s.record(actor, domain.AuditActionCreate, created.ID)
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor, id string, input ports.CourseInput) (*domain.Course, error) {
	updated, err := s.repo.Update(ctx, id, inputToCourse(input))
	if err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditActionUpdate, updated.ID)
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("course_id", id).Msg("course deleted")
	s.record(actor, domain.AuditActionDelete, id)
	return nil
}

func (s *CourseService) record(actor, action, id string) {
	s.audit.Enqueue(ports.AuditEventInput{
		Resource:   "courses",
		ResourceID: id,
		Action:     action,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
	})
}

func inputToCourse(input ports.CourseInput) *domain.Course {
	return &domain.Course{
		Name:       input.Name,
		Room:       input.Room,
		Instructor: input.Instructor,
		Day:        input.Day,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		UpdatedAt:  time.Now().UTC(),
	}
}
