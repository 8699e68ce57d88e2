package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/university/admin-system/internal/core/domain"
	"github.com/university/admin-system/internal/core/ports"
)

// AuditService persists audit events delivered by the queue dispatcher.
type AuditService struct {
	repo   ports.AuditRepository
	logger zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, logger zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, logger: logger}
}

func (s *AuditService) Record(ctx context.Context, event ports.AuditEventInput) error {
	if event.Resource == "" || event.Action == "" {
		s.logger.Warn().Str("resource", event.Resource).Str("action", event.Action).Msg("dropping malformed audit event")
		return nil
	}

	return s.repo.Insert(ctx, &domain.AuditEvent{
		Resource:   event.Resource,
		ResourceID: event.ResourceID,
		Action:     event.Action,
		Actor:      event.Actor,
		Timestamp:  event.Timestamp,
	})
}
