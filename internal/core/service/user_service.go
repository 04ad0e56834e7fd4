package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/validation"
)

// pageLimit is the fixed page size for user listings.
const pageLimit = 20

// UserService implements the CRUD use cases over user records.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log}
}

// List returns users matching the optional role filter, search term, and
// sort order. Any authenticated caller may list; there is no ownership rule
// on the collection.
func (s *UserService) List(ctx context.Context, actor ports.Actor, input ports.ListUsersInput) ([]*domain.User, error) {
	if input.Role != "" {
		if err := validation.Role(input.Role); err != nil {
			return nil, err
		}
	}
	if err := validation.Search(input.Search); err != nil {
		return nil, err
	}
	sortBy, desc, err := validation.Sort(input.Sort)
	if err != nil {
		return nil, err
	}
	page := input.Page
	if page < 1 {
		page = 1
	}

	return s.repo.List(ctx, ports.ListFilter{
		Role:     input.Role,
		Search:   input.Search,
		SortBy:   sortBy,
		SortDesc: desc,
		Page:     page,
		Limit:    pageLimit,
	})
}

// Get returns a single user. Self-or-admin only; a malformed identifier is
// folded into not-found.
func (s *UserService) Get(ctx context.Context, actor ports.Actor, userID string) (*domain.User, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}

// Update mutates the allow-listed fields of a user. Self-or-admin only; role
// changes require the admin role; password changes through this path are
// rejected outright.
func (s *UserService) Update(ctx context.Context, actor ports.Actor, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}
	if input.PasswordSupplied {
		return nil, domain.ErrPasswordImmutable
	}
	if input.Role != nil {
		if err := validation.Role(*input.Role); err != nil {
			return nil, err
		}
		if actor.Role != domain.RoleAdmin {
			return nil, domain.ErrAccessDenied
		}
	}

	update := ports.UserUpdate{Role: input.Role}
	if input.Name != nil {
		if err := validation.Name(*input.Name); err != nil {
			return nil, err
		}
		update.Name = input.Name
	}
	if input.Email != nil {
		if err := validation.Email(*input.Email); err != nil {
			return nil, err
		}
		email := validation.NormalizeEmail(*input.Email)
		update.Email = &email
	}

	user, err := s.repo.Update(ctx, userID, update)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		Action:    domain.AuditUserUpdated,
		SubjectID: userID,
		ActorID:   actor.ID,
		IP:        actor.IP,
	})
	s.log.Info().Str("user_id", userID).Str("actor_id", actor.ID).Msg("user updated")

	return user, nil
}

// Delete removes a user. Self-or-admin only. The result distinguishes a
// self-deletion so the handler can vary its confirmation message.
func (s *UserService) Delete(ctx context.Context, actor ports.Actor, userID string) (*ports.DeleteResult, error) {
	if err := requireSelfOrAdmin(actor, userID); err != nil {
		return nil, err
	}
	if err := validation.UserID(userID); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, userID); err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		Action:    domain.AuditUserDeleted,
		SubjectID: userID,
		ActorID:   actor.ID,
		IP:        actor.IP,
	})
	s.log.Info().Str("user_id", userID).Str("actor_id", actor.ID).Msg("user deleted")

	return &ports.DeleteResult{SelfDelete: actor.ID == userID}, nil
}

func requireSelfOrAdmin(actor ports.Actor, targetID string) error {
	if actor.Role == domain.RoleAdmin || actor.ID == targetID {
		return nil
	}
	return domain.ErrAccessDenied
}

func (s *UserService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
