package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository that records how many
// writes it has seen, so tests can assert that invalid input never reaches
// the store.
type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User // keyed by id
	nextID int
	writes int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}

	r.writes++
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("a%023x", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, filter ports.ListFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.User
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), needle) &&
				!strings.Contains(strings.ToLower(u.Email), needle) {
				continue
			}
		}
		out = append(out, cloneUser(u))
	}

	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case "name":
			less = out[i].Name < out[j].Name
		case "email":
			less = out[i].Email < out[j].Email
		default:
			less = out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if filter.SortDesc {
			return !less
		}
		return less
	})

	start := (filter.Page - 1) * filter.Limit
	if start >= len(out) {
		return nil, nil
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, update ports.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Email != nil {
		for otherID, other := range r.users {
			if otherID != id && other.Email == *update.Email {
				return nil, domain.ErrUserExists
			}
		}
		u.Email = *update.Email
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	u.UpdatedAt = time.Now().UTC()
	r.writes++
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.writes++
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *stubUserRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// stubLimiter is an in-memory LoginLimiter.
type stubLimiter struct {
	mu       sync.Mutex
	attempts map[string]int
	max      int
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{attempts: make(map[string]int), max: max}
}

func (l *stubLimiter) TooManyAttempts(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts[email] >= l.max, nil
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, email)
	return nil
}

// stubSink captures enqueued audit events synchronously.
type stubSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *stubSink) Enqueue(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action)
	}
	return out
}
