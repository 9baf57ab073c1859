package redisstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// EventCache remembers Stripe event IDs whose grants were durably written,
// so webhook re-deliveries can skip the store round-trip. Marking happens
// only after a successful upsert; a delivery that failed at the store stays
// unmarked and Stripe's retry goes through the full pipeline again. It is
// best-effort only: the entitlement upsert's unique key remains the
// correctness mechanism, and a nil cache (or a Redis outage) simply means
// every delivery is treated as first-seen.
type EventCache struct {
	rdb   *redis.Client
	keyNS string
	ttl   time.Duration
}

func NewEventCache(rdb *redis.Client, keyPrefix string, ttl time.Duration) *EventCache {
	if keyPrefix == "" {
		keyPrefix = "billing:stripe:event:"
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &EventCache{rdb: rdb, keyNS: keyPrefix, ttl: ttl}
}

func (c *EventCache) key(eventID string) string { return c.keyNS + eventID }

// Seen reports whether eventID was already processed. Errors are swallowed
// into false so Redis trouble never blocks the pipeline.
func (c *EventCache) Seen(ctx context.Context, eventID string) bool {
	if c == nil || c.rdb == nil || eventID == "" {
		return false
	}
	n, err := c.rdb.Exists(ctx, c.key(eventID)).Result()
	return err == nil && n > 0
}

// MarkProcessed records eventID after its grant has been written.
func (c *EventCache) MarkProcessed(ctx context.Context, eventID string) {
	if c == nil || c.rdb == nil || eventID == "" {
		return
	}
	_ = c.rdb.Set(ctx, c.key(eventID), 1, c.ttl).Err()
}
