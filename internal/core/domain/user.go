package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the fixed role enum values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrNoToken            = errors.New("no token provided")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrAccessDenied       = errors.New("access denied")
	ErrPasswordImmutable  = errors.New("password update not allowed")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)

// ValidationError carries every validation failure found in a request,
// joined into a single human-readable message ("Name is required, Email
// is required"). Handlers never report only the first failure.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, ", ")
}

// NewValidationError builds a ValidationError, or returns nil when no
// messages were collected.
func NewValidationError(messages []string) error {
	if len(messages) == 0 {
		return nil
	}
	return &ValidationError{Messages: messages}
}

// User models an account in the system. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the elevated role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanAccess implements the self-or-admin ownership rule against a target
// user id.
func (u *User) CanAccess(targetID string) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.ID == targetID
}
