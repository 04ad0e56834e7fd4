package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/userhub/user-management-api/internal/metrics"
	"github.com/userhub/user-management-api/internal/core/domain"
	"github.com/userhub/user-management-api/internal/core/ports"
	"github.com/userhub/user-management-api/internal/core/validation"
)

// bcryptCost is the fixed work factor applied to every password hash.
const bcryptCost = bcrypt.DefaultCost

// LoginLimiter abstracts the failed-login throttle (Redis).
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration, login, and logout.
type AuthService struct {
	repo    ports.UserRepository
	tokens  *TokenService
	limiter LoginLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, limiter LoginLimiter, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter, audit: audit, log: log}
}

// Register validates a signup payload, checks email uniqueness, and creates
// the user with a hashed password. The plaintext password is never stored or
// logged. Returns the created record's id.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	if err := validation.Registration(input.Name, input.Email, input.Password); err != nil {
		return "", err
	}

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if err := validation.Role(role); err != nil {
		return "", err
	}

	email := validation.NormalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The uniqueness precheck races with concurrent signups; the store's
	// unique email index resolves the race and surfaces it as ErrUserExists.
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.WithLabelValues(role).Inc()
	s.record(domain.AuditEvent{
		Action:    domain.AuditUserRegistered,
		SubjectID: created.ID,
		Email:     created.Email,
		IP:        input.IP,
	})
	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user registered")

	return created.ID, nil
}

// Login verifies credentials and issues a bearer token. A missing account
// and a wrong password produce the identical ErrInvalidCredentials so
// account existence is not leaked.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (string, *domain.User, error) {
	if err := validation.Login(input.Email, input.Password); err != nil {
		return "", nil, err
	}

	email := validation.NormalizeEmail(input.Email)

	if s.limiter != nil {
		blocked, err := s.limiter.TooManyAttempts(ctx, email)
		if err != nil {
			// Fail open: a throttle outage must not lock everyone out.
			s.log.Warn().Err(err).Msg("login limiter check failed, proceeding")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, s.failLogin(ctx, email, input.IP)
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return "", nil, s.failLogin(ctx, email, input.IP)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.record(domain.AuditEvent{
		Action:    domain.AuditUserLogin,
		SubjectID: user.ID,
		ActorID:   user.ID,
		Email:     user.Email,
		IP:        input.IP,
	})
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return token, user, nil
}

// Logout records the signout. Tokens are stateless, so the only server-side
// effect is the audit trail; the client discards the token and cookie.
func (s *AuthService) Logout(ctx context.Context, actorID, ip string) {
	s.record(domain.AuditEvent{
		Action:    domain.AuditUserSignout,
		SubjectID: actorID,
		ActorID:   actorID,
		IP:        ip,
	})
}

func (s *AuthService) failLogin(ctx context.Context, email, ip string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("login limiter record failed")
		}
	}
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.record(domain.AuditEvent{
		Action: domain.AuditUserLoginFail,
		Email:  email,
		IP:     ip,
	})
	return domain.ErrInvalidCredentials
}

func (s *AuthService) hashPassword(plaintext string) (string, error) {
	start := time.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
