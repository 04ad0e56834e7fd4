package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous recording. Enqueue must
// never fail the calling request; implementations log and drop on overflow.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder processes a single audit event from the dispatcher.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
