package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

// StudentService implements CRUD over the students collection. Successful
// mutations are enqueued to the audit recorder.
type StudentService struct {
	repo   ports.StudentRepository
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewStudentService(repo ports.StudentRepository, audit ports.AuditRecorder, logger zerolog.Logger) *StudentService {
	return &StudentService{repo: repo, audit: audit, logger: logger}
}

func (s *StudentService) List(ctx context.Context) ([]*domain.Student, error) {
	return s.repo.List(ctx)
}

func (s *StudentService) Get(ctx context.Context, id string) (*domain.Student, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StudentService) GetByCIN(ctx context.Context, cin string) (*domain.Student, error) {
	return s.repo.FindByCIN(ctx, cin)
}

func (s *StudentService) Create(ctx context.Context, actor string, input ports.StudentInput) (*domain.Student, error) {
	now := time.Now().UTC()
	student := &domain.Student{
		LastName:  input.LastName,
		FirstName: input.FirstName,
		CIN:       input.CIN,
		Email:     input.Email,
		Phone:     input.Phone,
		Level:     input.Level,
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, student)
	if err != nil {
		s.logger.Error().Err(err).Str("cin", input.CIN).Msg("failed to create student")
		return nil, err
	}

	s.logger.Info().Str("student_id", created.ID).Str("cin", created.CIN).Msg("student created")
	s.record(actor, domain.AuditActionCreate, created.ID)
	return created, nil
}

func (s *StudentService) Update(ctx context.Context, actor, id string, input ports.StudentInput) (*domain.Student, error) {
	updated, err := s.repo.Update(ctx, id, inputToStudent(input))
	if err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditActionUpdate, updated.ID)
	return updated, nil
}

func (s *StudentService) UpdateByCIN(ctx context.Context, actor, cin string, input ports.StudentInput) (*domain.Student, error) {
	updated, err := s.repo.UpdateByCIN(ctx, cin, inputToStudent(input))
	if err != nil {
		return nil, err
	}
	s.record(actor, domain.AuditActionUpdate, updated.ID)
	return updated, nil
}

func (s *StudentService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("student_id", id).Msg("student deleted")
	s.record(actor, domain.AuditActionDelete, id)
	return nil
}

func (s *StudentService) DeleteByCIN(ctx context.Context, actor, cin string) error {
	student, err := s.repo.FindByCIN(ctx, cin)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByCIN(ctx, cin); err != nil {
		return err
	}
	s.record(actor, domain.AuditActionDelete, student.ID)
	return nil
}

func (s *StudentService) record(actor, action, id string) {
	s.audit.Enqueue(ports.AuditEventInput{
		Resource:   "students",
		ResourceID: id,
		Action:     action,
		Actor:      actor,
		Timestamp:  time.Now().UTC(),
	})
}

func inputToStudent(input ports.StudentInput) *domain.Student {
	return &domain.Student{
		LastName:  input.LastName,
		FirstName: input.FirstName,
		CIN:       input.CIN,
		Email:     input.Email,
		Phone:     input.Phone,
		Level:     input.Level,
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		UpdatedAt: time.Now().UTC(),
	}
}
