package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter throttles login attempts per username with a counter that
// expires after the configured window. Key format: login_attempts:<username>
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewLoginLimiter(client *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginLimiter{client: client, limit: limit, window: window}
}

func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, error) {
	key := attemptsKey(username)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("count login attempt: %w", err)
	}
	// First attempt in a fresh window starts the clock.
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("set attempt window: %w", err)
		}
	}
	return n <= int64(l.limit), nil
}

func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, attemptsKey(username)).Err()
}

func attemptsKey(username string) string { return "login_attempts:" + username }
