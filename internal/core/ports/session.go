package ports

import (
	"context"
	"time"
)

// Session is a server-side login record. The bearer token presented by
// clients references a session by ID; deleting the record revokes the
// token regardless of its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore holds active sessions.
type SessionStore interface {
	Put(ctx context.Context, s *Session) error
	// Get returns the session or domain.ErrSessionExpired when it is
	// absent (expired, logged out, or revoked).
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteAllForUser revokes every session of a user (used on ban).
	DeleteAllForUser(ctx context.Context, userID string) error
}

// LoginLimiter throttles login attempts per username.
type LoginLimiter interface {
	// Allow reports whether another attempt is permitted right now.
	Allow(ctx context.Context, username string) (bool, error)
	// Reset clears the attempt counter after a successful login.
	Reset(ctx context.Context, username string) error
}
