// Package dedupe suppresses headlines already ingested in recent collection
// cycles, keyed by URL. The Redis backend shares seen-state across
// processes; the in-memory backend is the single-process default.
package dedupe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Deduper records headline keys and reports whether a key was seen before.
type Deduper interface {
	// Seen marks key as ingested and reports whether it had already been
	// marked within the retention window.
	Seen(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// --- Redis backend ---

// redisDeduper marks keys with SETNX + TTL so state is shared across
// collector processes and expires on its own.
type redisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed deduper against the given address.
func NewRedis(addr string, ttl time.Duration) Deduper {
	return &redisDeduper{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func (d *redisDeduper) Seen(ctx context.Context, key string) (bool, error) {
	set, err := d.client.SetNX(ctx, "seen:"+key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe check %s: %w", key, err)
	}
	// SETNX succeeded means the key was new.
	return !set, nil
}

func (d *redisDeduper) Close() error {
	return d.client.Close()
}

// --- In-memory backend ---

// memoryDeduper keeps seen keys in a map with per-key expiry.
type memoryDeduper struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemory creates an in-process deduper with the given retention window.
func NewMemory(ttl time.Duration) Deduper {
	return &memoryDeduper{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (d *memoryDeduper) Seen(_ context.Context, key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if expiry, ok := d.seen[key]; ok && now.Before(expiry) {
		return true, nil
	}
	d.seen[key] = now.Add(d.ttl)

	// Opportunistic sweep to keep the map bounded.
	if len(d.seen) > 10000 {
		for k, expiry := range d.seen {
			if now.After(expiry) {
				delete(d.seen, k)
			}
		}
	}
	return false, nil
}

func (d *memoryDeduper) Close() error { return nil }
