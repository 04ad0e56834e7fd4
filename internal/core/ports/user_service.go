package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	ID   string
	Role string
	IP   string
}

// ListUsersInput carries validated query parameters for the list endpoint.
type ListUsersInput struct {
	Role   string
	Search string
	Sort   string
	Page   int
}

// UpdateUserInput carries the allow-listed update fields for a target user.
// PasswordSupplied flags a rejected attempt to change the password through
// this path.
type UpdateUserInput struct {
	Name             *string
	Email            *string
	Role             *string
	PasswordSupplied bool
}

// DeleteResult reports a completed deletion. SelfDelete distinguishes the
// confirmation message for an actor removing their own account.
type DeleteResult struct {
	SelfDelete bool
}

// UserService defines the CRUD use cases over user records. Record-level
// methods enforce the self-or-admin ownership rule.
type UserService interface {
	List(ctx context.Context, actor Actor, input ListUsersInput) ([]*domain.User, error)
	Get(ctx context.Context, actor Actor, userID string) (*domain.User, error)
	Update(ctx context.Context, actor Actor, userID string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor Actor, userID string) (*DeleteResult, error)
}
