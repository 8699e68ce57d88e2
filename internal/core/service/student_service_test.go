package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

type stubStudentRepo struct {
	students map[string]*domain.Student
	nextID   int
}

func newStubStudentRepo() *stubStudentRepo {
	return &stubStudentRepo{students: make(map[string]*domain.Student)}
}

func cloneStudent(s *domain.Student) *domain.Student {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubStudentRepo) Create(_ context.Context, s *domain.Student) (*domain.Student, error) {
	for _, existing := range r.students {
		if existing.CIN == s.CIN || existing.Email == s.Email {
			return nil, domain.ErrDuplicateStudent
		}
	}
	r.nextID++
	copy := cloneStudent(s)
	copy.ID = "s" + strconv.Itoa(r.nextID)
	r.students[copy.ID] = cloneStudent(copy)
	return copy, nil
}

func (r *stubStudentRepo) FindByID(_ context.Context, id string) (*domain.Student, error) {
	if s, ok := r.students[id]; ok {
		return cloneStudent(s), nil
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) FindByCIN(_ context.Context, cin string) (*domain.Student, error) {
	for _, s := range r.students {
		if s.CIN == cin {
			return cloneStudent(s), nil
		}
	}
	return nil, domain.ErrStudentNotFound
}

func (r *stubStudentRepo) List(_ context.Context) ([]*domain.Student, error) {
	out := make([]*domain.Student, 0, len(r.students))
	for _, s := range r.students {
		out = append(out, cloneStudent(s))
	}
	return out, nil
}

func (r *stubStudentRepo) Update(_ context.Context, id string, s *domain.Student) (*domain.Student, error) {
	if _, ok := r.students[id]; !ok {
		return nil, domain.ErrStudentNotFound
	}
	copy := cloneStudent(s)
	copy.ID = id
	r.students[id] = cloneStudent(copy)
	return copy, nil
}

func (r *stubStudentRepo) UpdateByCIN(ctx context.Context, cin string, s *domain.Student) (*domain.Student, error) {
	existing, err := r.FindByCIN(ctx, cin)
	if err != nil {
		return nil, err
	}
	return r.Update(ctx, existing.ID, s)
}

func (r *stubStudentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.students[id]; !ok {
		return domain.ErrStudentNotFound
	}
	delete(r.students, id)
	return nil
}

func (r *stubStudentRepo) DeleteByCIN(ctx context.Context, cin string) error {
	existing, err := r.FindByCIN(ctx, cin)
	if err != nil {
		return err
	}
	return r.Delete(ctx, existing.ID)
}

type stubAuditRecorder struct {
	events []ports.AuditEventInput
}

func (a *stubAuditRecorder) Enqueue(event ports.AuditEventInput) {
	a.events = append(a.events, event)
}

func studentInput(cin string) ports.StudentInput {
	return ports.StudentInput{
		LastName:  "El Amrani",
		FirstName: "Yasmine",
		CIN:       cin,
		Email:     "yasmine+" + cin + "@example.com",
		Phone:     "21612345",
		Level:     "L2",
		Gender:    "Féminin",
		BirthDate: "2003-05-14",
	}
}

func TestStudentService_Create(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &stubAuditRecorder{}
	svc := NewStudentService(repo, audit, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin", studentInput("12345678"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if created.CIN != "12345678" {
		t.Fatalf("unexpected student: %+v", created)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", created)
	}

	if len(audit.events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(audit.events))
	}
	event := audit.events[0]
	if event.Resource != "students" || event.Action != domain.AuditActionCreate {
		t.Fatalf("unexpected audit event: %+v", event)
	}
	if event.Actor != "admin" || event.ResourceID != created.ID {
		t.Fatalf("unexpected audit event: %+v", event)
	}
}

func TestStudentService_Create_Duplicate(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &stubAuditRecorder{}
	svc := NewStudentService(repo, audit, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "admin", studentInput("12345678")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin", studentInput("12345678")); err != domain.ErrDuplicateStudent {
		t.Fatalf("expected ErrDuplicateStudent, got %v", err)
	}
	if len(audit.events) != 1 {
		t.Fatalf("failed create must not be audited, got %d events", len(audit.events))
	}
}

func TestStudentService_Update(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &stubAuditRecorder{}
	svc := NewStudentService(repo, audit, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", studentInput("12345678"))

	input := studentInput("12345678")
	input.Level = "L3"
	updated, err := svc.Update(context.Background(), "admin", created.ID, input)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Level != "L3" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(audit.events) != 2 || audit.events[1].Action != domain.AuditActionUpdate {
		t.Fatalf("expected update audit event, got %+v", audit.events)
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc := NewStudentService(newStubStudentRepo(), &stubAuditRecorder{}, zerolog.Nop())

	if _, err := svc.Update(context.Background(), "admin", "missing", studentInput("12345678")); err != domain.ErrStudentNotFound {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentService_UpdateByCIN(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &stubAuditRecorder{}
	svc := NewStudentService(repo, audit, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", studentInput("12345678"))

	input := studentInput("12345678")
	input.Phone = "21699999"
	updated, err := svc.UpdateByCIN(context.Background(), "admin", "12345678", input)
	if err != nil {
		t.Fatalf("UpdateByCIN: %v", err)
	}
	if updated.ID != created.ID || updated.Phone != "21699999" {
		t.Fatalf("unexpected student: %+v", updated)
	}
}

func TestStudentService_GetByCIN(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo, &stubAuditRecorder{}, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", studentInput("12345678"))

	found, err := svc.GetByCIN(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("GetByCIN: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("unexpected student: %+v", found)
	}

	if _, err := svc.GetByCIN(context.Background(), "00000000"); err != domain.ErrStudentNotFound {
		t.Fatalf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentService_DeleteByCIN(t *testing.T) {
	repo := newStubStudentRepo()
	audit := &stubAuditRecorder{}
	svc := NewStudentService(repo, audit, zerolog.Nop())

	created, _ := svc.Create(context.Background(), "admin", studentInput("12345678"))

	if err := svc.DeleteByCIN(context.Background(), "admin", "12345678"); err != nil {
		t.Fatalf("DeleteByCIN: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != domain.ErrStudentNotFound {
		t.Fatalf("expected student gone, got %v", err)
	}
	last := audit.events[len(audit.events)-1]
	if last.Action != domain.AuditActionDelete || last.ResourceID != created.ID {
		t.Fatalf("unexpected audit event: %+v", last)
	}
}

func TestStudentService_List(t *testing.T) {
	repo := newStubStudentRepo()
	svc := NewStudentService(repo, &stubAuditRecorder{}, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "admin", studentInput("11111111"))
	_, _ = svc.Create(context.Background(), "admin", studentInput("22222222"))

	students, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 students, got %d", len(students))
	}
}
