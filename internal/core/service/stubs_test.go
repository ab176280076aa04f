package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/clickerrealm/community-api/internal/core/domain"
	"github.com/clickerrealm/community-api/internal/core/ports"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role{}, u.Roles...)
	return &clone
}

func cloneKey(k *domain.RegistrationKey) *domain.RegistrationKey {
	if k == nil {
		return nil
	}
	clone := *k
	return &clone
}

type stubUserRepo struct {
	users map[string]*domain.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Roles != nil {
		u.Roles = append([]domain.Role{}, (*patch.Roles)...)
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type stubKeyRepo struct {
	keys map[string]*domain.RegistrationKey // by id
}

func newStubKeyRepo() *stubKeyRepo {
	return &stubKeyRepo{keys: make(map[string]*domain.RegistrationKey)}
}

func (r *stubKeyRepo) Insert(_ context.Context, key *domain.RegistrationKey) error {
	for _, k := range r.keys {
		if k.Value == key.Value {
			return domain.ErrKeyValueTaken
		}
	}
	r.keys[key.ID] = cloneKey(key)
	return nil
}

func (r *stubKeyRepo) Redeem(_ context.Context, value, consumerID string) (*domain.RegistrationKey, error) {
	for _, k := range r.keys {
		if k.Value == value && !k.IsUsed {
			k.IsUsed = true
			k.UsedBy = consumerID
			return cloneKey(k), nil
		}
	}
	return nil, domain.ErrInvalidOrUsedKey
}

func (r *stubKeyRepo) Release(_ context.Context, id string) error {
	k, ok := r.keys[id]
	if !ok {
		return domain.ErrKeyNotFound
	}
	k.IsUsed = false
	k.UsedBy = ""
	return nil
}

func (r *stubKeyRepo) FindByID(_ context.Context, id string) (*domain.RegistrationKey, error) {
	k, ok := r.keys[id]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return cloneKey(k), nil
}

func (r *stubKeyRepo) Delete(_ context.Context, id string) error {
	k, ok := r.keys[id]
	if !ok {
		return domain.ErrKeyNotFound
	}
	if k.IsUsed {
		return domain.ErrKeyInUse
	}
	delete(r.keys, id)
	return nil
}

func (r *stubKeyRepo) List(_ context.Context) ([]*domain.RegistrationKey, error) {
	out := make([]*domain.RegistrationKey, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, cloneKey(k))
	}
	return out, nil
}

type stubSessionStore struct {
	sessions map[string]*ports.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*ports.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, sess *ports.Session) error {
	clone := *sess
	s.sessions[sess.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*ports.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionExpired
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionExpired
	}
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) DeleteAllForUser(_ context.Context, userID string) error {
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

// stubLimiter allows everything unless told otherwise.
type stubLimiter struct {
	denied bool
	err    error
	resets []string
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return !l.denied, nil
}

func (l *stubLimiter) Reset(_ context.Context, username string) error {
	l.resets = append(l.resets, username)
	return nil
}

// captureRecorder collects audit events synchronously for assertions.
type captureRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *captureRecorder) Record(event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *captureRecorder) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

var errStubFailure = errors.New("stub failure")
