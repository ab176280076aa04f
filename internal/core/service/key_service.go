package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

const keyValuePrefix = "REG-"

// maxIssueAttempts bounds regeneration when a key value collides with an
// existing ledger entry.
const maxIssueAttempts = 5

// KeyService implements the registration-key ledger operations.
type KeyService struct {
	keys  ports.KeyRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewKeyService(keys ports.KeyRepository, audit ports.AuditRecorder, log zerolog.Logger) *KeyService {
	return &KeyService{keys: keys, audit: audit, log: log}
}

func (s *KeyService) Issue(ctx context.Context, actor *domain.User) (*domain.RegistrationKey, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}

	var key *domain.RegistrationKey
	for attempt := 1; ; attempt++ {
		key = &domain.RegistrationKey{
			ID:          uuid.NewString(),
			Value:       generateKeyValue(),
			GeneratedBy: actor.ID,
			CreatedAt:   time.Now().UTC(),
		}
		err := s.keys.Insert(ctx, key)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrKeyValueTaken) || attempt >= maxIssueAttempts {
			return nil, err
		}
	}

	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		ActorID:   actor.ID,
		Actor:     actor.Username,
		Action:    domain.AuditKeyIssued,
		TargetID:  key.ID,
		Timestamp: time.Now().UTC(),
	})
	s.log.Info().Str("actor", actor.Username).Str("key_id", key.ID).Msg("registration key issued")
	return key, nil
}

func (s *KeyService) Delete(ctx context.Context, actor *domain.User, keyID string) error {
	if actor == nil || !actor.IsAdmin() {
		return domain.ErrUnauthorized
	}

	key, err := s.keys.FindByID(ctx, keyID)
	if err != nil {
		return err
	}
	// Used keys stay in the ledger forever: they are the registration
	// audit record linking a user to the invite that created them.
	if key.IsUsed {
		return domain.ErrKeyInUse
	}

	if err := s.keys.Delete(ctx, keyID); err != nil {
		return err
	}

	s.audit.Record(domain.AuditEvent{
		ID:        uuid.NewString(),
		ActorID:   actor.ID,
		Actor:     actor.Username,
		Action:    domain.AuditKeyDeleted,
		TargetID:  keyID,
		Timestamp: time.Now().UTC(),
	})
	return nil
}

func (s *KeyService) List(ctx context.Context, actor *domain.User) ([]*domain.RegistrationKey, error) {
	if actor == nil || !actor.IsAdmin() {
		return nil, domain.ErrUnauthorized
	}
	return s.keys.List(ctx)
}

// generateKeyValue returns an invite value in the format REG-XXXXXXXX.
// Only ledger uniqueness matters; the shape is cosmetic.
func generateKeyValue() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return keyValuePrefix + suffix
}
