package domain

import "time"

// Audit actions recorded for resource mutations.
const (
	AuditActionCreate = "create"
	AuditActionUpdate = "update"
	AuditActionDelete = "delete"
)

// AuditEvent records a single successful mutation applied to a resource.
type AuditEvent struct {
	Resource   string    `bson:"resource"`    // "students" or "courses"
	ResourceID string    `bson:"resource_id"` // server-assigned id of the mutated record
	Action     string    `bson:"action"`
	Actor      string    `bson:"actor"` // username taken from the JWT claims
	Timestamp  time.Time `bson:"timestamp"`
}
