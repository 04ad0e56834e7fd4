package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/userhub/user-management-api/internal/metrics"
	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditRecorder that persists events delivered
// by the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditRecorder {
	return &auditService{repo: repo, log: log}
}

// Record persists one audit event. Failures are surfaced to the dispatcher
// for logging; they never reach a request path.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(event.Action).Inc()
	s.log.Debug().
		Str("action", event.Action).
		Str("subject_id", event.SubjectID).
		Msg("audit event recorded")

	return nil
}
