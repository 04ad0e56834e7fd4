package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// RegisterInput carries a signup payload. Role is optional and defaults to
// the standard user role.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	IP       string
}

// LoginInput carries a signin payload.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// AuthService defines the registration, login, and logout use cases.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (userID string, err error)
	Login(ctx context.Context, input LoginInput) (token string, user *domain.User, err error)
	Logout(ctx context.Context, actorID, ip string)
}
