package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userhub/user-management-api/internal/core/domain"
)

type stubAuditRepo struct {
	inserted []domain.AuditEvent
	fail     error
}

func (r *stubAuditRepo) Insert(_ context.Context, event *domain.AuditEvent) error {
	if r.fail != nil {
		return r.fail
	}
	r.inserted = append(r.inserted, *event)
	return nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuditEvent{
		ID:     "evt-1",
		Action: domain.AuditUserLogin,
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)
	assert.Equal(t, domain.AuditUserLogin, repo.inserted[0].Action)
}

func TestAuditService_Record_SurfacesStoreFailure(t *testing.T) {
	boom := errors.New("mongo down")
	svc := NewAuditService(&stubAuditRepo{fail: boom}, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuditEvent{Action: domain.AuditUserDeleted})
	assert.ErrorIs(t, err, boom)
}
