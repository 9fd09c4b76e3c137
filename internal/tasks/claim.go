package tasks

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Claimer is the cross-process mutual exclusion used by recurring tasks:
// one atomic claim per (task, period), never read-then-write.
type Claimer interface {
	// Claim atomically takes the marker for key. False means another
	// instance already holds or finished this period.
	Claim(ctx context.Context, key string) (bool, error)
	// MarkDone flips the marker to done for the remainder of ttl so
	// re-triggers within the period keep aborting.
	MarkDone(ctx context.Context, key string, ttl time.Duration) error
	// Release drops a claim after a failed run so a retry can take it.
	Release(ctx context.Context, key string) error
}

// RedisClaimer implements Claimer with SET NX. The claim TTL doubles as the
// staleness policy: a crashed run's marker expires on its own instead of
// blocking the period forever.
type RedisClaimer struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClaimer(client *redis.Client, ttl time.Duration) *RedisClaimer {
	return &RedisClaimer{client: client, ttl: ttl}
}

func (c *RedisClaimer) Claim(ctx context.Context, key string) (bool, error) {
	return c.client.SetNX(ctx, key, "running", c.ttl).Result()
}

func (c *RedisClaimer) MarkDone(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Set(ctx, key, "done", ttl).Err()
}

func (c *RedisClaimer) Release(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

var _ Claimer = (*RedisClaimer)(nil)
