package ports

import (
	"context"

	"github.com/clickerrealm/community-api/internal/core/domain"
)

// AuthResult is returned on successful login or registration. Registration
// auto-logs the new user in, so both carry a token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService is the composed authorization layer: it owns the credential
// store, the key ledger, and the session lifecycle, and is the only
// component allowed to mutate them.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	// Register validates inputs, redeems the registration key, inserts the
	// new user and logs them in.
	Register(ctx context.Context, username, password, keyValue string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	// Authenticate resolves a bearer token to the live user record and the
	// session ID. Banned users fail with domain.ErrAccountBanned and have
	// their sessions revoked.
	Authenticate(ctx context.Context, token string) (*domain.User, string, error)

	GrantRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error)
	RevokeRole(ctx context.Context, actor *domain.User, targetID string, role domain.Role) (*domain.User, error)
	SetBanStatus(ctx context.Context, actor *domain.User, targetID string, banned bool) (*domain.User, error)
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)

	// EnsureBootstrapAdmin inserts the distinguished admin account when it
	// is missing from the credential store.
	EnsureBootstrapAdmin(ctx context.Context) error
}
