package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rankLockKeyPrefix = "terplist:ranklock:"

// RankLock is a redis run marker that keeps overlapping snapshot runs
// mutually exclusive. The TTL guarantees the marker expires even if a run
// crashes before releasing it.
type RankLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRankLock(client *redis.Client, ttl time.Duration) *RankLock {
	return &RankLock{client: client, ttl: ttl}
}

// Acquire sets the run marker for the given snapshot date. It returns false
// when another run already holds the marker.
func (l *RankLock) Acquire(ctx context.Context, snapshotDate string) (bool, error) {
	ok, err := l.client.SetNX(ctx, rankLockKeyPrefix+snapshotDate, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire rank lock: %w", err)
	}
	return ok, nil
}

// Release removes the run marker so a retry can run before the TTL expires.
func (l *RankLock) Release(ctx context.Context, snapshotDate string) error {
	if err := l.client.Del(ctx, rankLockKeyPrefix+snapshotDate).Err(); err != nil {
		return fmt.Errorf("failed to release rank lock: %w", err)
	}
	return nil
}
