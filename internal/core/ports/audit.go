package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// AuditRecorder accepts audit events for asynchronous persistence.
// Implementations must not block the caller beyond queue backpressure.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuditRepository persists the audit trail.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuditEvent) error
	// ListRecent returns up to limit events, newest first.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error)
}
