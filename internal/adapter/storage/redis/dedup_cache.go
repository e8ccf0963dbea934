package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DedupCache implements ports.DedupCache on plain Redis keys.
//
// It is a fast path only: a miss here never blocks a credit, and the
// database upsert remains the source of truth for idempotency.
type DedupCache struct {
	client *goredis.Client
	prefix string
}

// NewDedupCache creates a new Redis-backed dedup cache.
func NewDedupCache(client *goredis.Client) *DedupCache {
	return &DedupCache{
		client: client,
		prefix: "dedup:",
	}
}

// Seen reports whether the key has been marked. It never writes, so a
// notice whose credit later fails stays retryable.
func (c *DedupCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the key for the given TTL. Called only after the credit
// has committed.
func (c *DedupCache) Mark(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis dedup mark: %w", err)
	}
	return nil
}
