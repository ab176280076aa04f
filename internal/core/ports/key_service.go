package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// KeyService exposes registration-key ledger operations. All of them
// require an admin actor.
type KeyService interface {
	Issue(ctx context.Context, actor *domain.User) (*domain.RegistrationKey, error)
	// Delete removes an unused key. Used keys are immutable and fail with
	// domain.ErrKeyInUse.
	Delete(ctx context.Context, actor *domain.User, keyID string) error
	List(ctx context.Context, actor *domain.User) ([]*domain.RegistrationKey, error)
}
