// File: internal/infra/redis/dedupe_cache.go
package redis

import (
	"context"
	"time"

	"alertpe-admin/internal/usecase"
)

var _ usecase.DedupeCache = (*DedupeCache)(nil)

// DedupeCache keeps a marker per (upiId, amount) for the duplicate window so
// repeat reports skip the database check. Redis being down only costs the
// fast path.
type DedupeCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewDedupeCache(client RedisClient, ttl time.Duration) *DedupeCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DedupeCache{client: client, ttl: ttl}
}

func (c *DedupeCache) Seen(ctx context.Context, key string) (bool, error) {
	return c.client.Exists(ctx, "payment_dedupe:"+key)
}

func (c *DedupeCache) Remember(ctx context.Context, key string) error {
	return c.client.Set(ctx, "payment_dedupe:"+key, "1", c.ttl)
}
