package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "terplist:ratelimit:"

// RateLimiter is a fixed-window counter keyed by caller identity. The first
// increment in a window sets the expiry so abandoned keys clean themselves up.
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow increments the caller's counter and reports whether the request is
// within the limit. Redis failures are returned to the caller; the middleware
// decides whether to fail open.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	fullKey := rateLimitKeyPrefix + key

	count, err := r.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate counter: %w", err)
	}
	if count == 1 {
		if err := r.client.Expire(ctx, fullKey, r.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate counter expiry: %w", err)
		}
	}

	return count <= int64(r.limit), nil
}
