package ports

import (
	"context"
	"time"
)

// AuditEventInput is the DTO handed from services to the audit pipeline.
type AuditEventInput struct {
	Resource   string
	ResourceID string
	Action     string
	Actor      string
	Timestamp  time.Time
}

// AuditService persists a single audit event.
type AuditService interface {
	Record(ctx context.Context, event AuditEventInput) error
}

// AuditRecorder accepts audit events for asynchronous persistence. Resource
// services enqueue through this interface; the queue dispatcher implements it.
type AuditRecorder interface {
	Enqueue(event AuditEventInput)
}
