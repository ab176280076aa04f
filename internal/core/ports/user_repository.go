package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// UserPatch is a partial mutation applied to a stored user. Nil fields are
// left untouched.
type UserPatch struct {
	Roles  *[]domain.Role
	Status *domain.Status
}

// UserRepository persists user records. Username uniqueness is enforced at
// this layer: Insert fails with domain.ErrUsernameTaken on a duplicate.
type UserRepository interface {
	Insert(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update applies the patch and returns the updated record, or
	// domain.ErrUserNotFound.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
