package ports

import (
	"context"

	"github.com/userhub/user-management-api/internal/core/domain"
)

// ListFilter narrows and orders a user listing. Page is 1-based.
type ListFilter struct {
	Role     string
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	Limit    int
}

// UserUpdate carries the allow-listed mutable fields. Nil pointers leave the
// stored value untouched.
type UserUpdate struct {
	Name  *string
	Email *string
	Role  *string
}

// UserRepository is the persistence contract for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
