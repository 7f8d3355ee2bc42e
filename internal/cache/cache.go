package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache wraps an injected Redis client with JSON helpers and cache-aside
// reads. A Cache with a nil client is valid: every read misses and every
// write is a no-op, so the data store stays authoritative.
type Cache struct {
	rdb   *redis.Client
	group singleflight.Group
}

// New returns a Cache over the given client. rdb may be nil.
func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

// GetJSON attempts to get the key from Redis and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// GetString reads a plain string value, ("", false) on miss.
func (c *Cache) GetString(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.rdb == nil {
		return "", false, nil
	}
	s, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// SetString stores a plain string value with TTL.
func (c *Cache) SetString(ctx context.Context, key, val string, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Set(ctx, key, val, ttl).Err()
}

// Aside tries Redis first; on miss it calls fetch (which must populate
// dest), stores the result with ttl, and reports whether the value came
// from the cache. Concurrent misses on the same key are collapsed into a
// single fetch; followers decode the leader's result instead of hitting
// the data store again.
func (c *Cache) Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) (bool, error) {
	// A cache read failure degrades to a miss; the store stays
	// authoritative and the error is already counted by the redis hook.
	found, err := c.GetJSON(ctx, key, dest)
	if err == nil && found {
		return true, nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		if err := fetch(); err != nil {
			return nil, err
		}
		b, err := json.Marshal(dest)
		if err != nil {
			return nil, err
		}
		// Store into cache (best-effort)
		if c != nil && c.rdb != nil {
			_ = c.rdb.Set(ctx, key, b, ttl).Err()
		}
		return b, nil
	})
	if err != nil {
		return false, err
	}

	if shared {
		if err := json.Unmarshal(v.([]byte), dest); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Invalidate removes the given keys, best-effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	c.rdb.Del(ctx, keys...)
}
