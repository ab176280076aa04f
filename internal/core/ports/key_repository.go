package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// KeyRepository persists registration keys. Key values are unique across
// the ledger.
type KeyRepository interface {
	// Insert stores a fresh key. A value collision yields
	// domain.ErrKeyValueTaken so the caller can regenerate.
	Insert(ctx context.Context, key *domain.RegistrationKey) error
	// Redeem atomically marks the unused key with the given value as used
	// by consumerID. It fails with domain.ErrInvalidOrUsedKey when no
	// unused key carries that exact value, so two concurrent redemptions
	// of the same key cannot both succeed.
	Redeem(ctx context.Context, value, consumerID string) (*domain.RegistrationKey, error)
	// Release reverts a redemption. Only used as a compensating write when
	// registration loses the username race after redeeming.
	Release(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.RegistrationKey, error)
	// Delete removes an unused key. It fails with domain.ErrKeyNotFound
	// when the key is absent and domain.ErrKeyInUse when it has been
	// redeemed, however recently.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.RegistrationKey, error)
}
