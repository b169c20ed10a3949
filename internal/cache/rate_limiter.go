package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window counter in redis, shared across replicas.
// The public upload surface is anonymous and abuse-prone, so counting has to
// happen somewhere all instances can see.
type RateLimiter struct {
	client *redisv9.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redisv9.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow counts one attempt against key and reports whether it is within the
// window's limit. A limit of zero disables the limiter.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	fullKey := fmt.Sprintf("ratelimit:%s", key)
	count, err := l.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis incr rate key failed: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, fullKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("redis expire rate key failed: %w", err)
		}
	}
	return count <= int64(l.limit), nil
}
