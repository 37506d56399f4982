// ABOUTME: Process-local render cache backed by patrickmn/go-cache
// ABOUTME: Default backend; entries vanish on restart

package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"bliki-feed-api/core/interfaces"
	"bliki-feed-api/pkg/config"
)

const defaultCleanup = 10 * time.Minute

// MemoryCache keeps rendered documents in the API process
type MemoryCache struct {
	items *cache.Cache
}

// NewMemoryCache builds a cache; a non-positive DefaultExpiration keeps entries forever
func NewMemoryCache(cfg config.MemoryConfig) *MemoryCache {
	expiration := cfg.DefaultExpiration
	if expiration <= 0 {
		expiration = cache.NoExpiration
	}
	cleanup := cfg.CleanupInterval
	if cleanup <= 0 {
		cleanup = defaultCleanup
	}
	return &MemoryCache{items: cache.New(expiration, cleanup)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, ok := c.items.Get(key)
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return clone(value.([]byte)), nil
}

// Set stores a private copy of value. Zero means no expiry, unlike go-cache
// where zero selects the default.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl == 0 {
		ttl = cache.NoExpiration
	}
	c.items.Set(key, clone(value), ttl)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.items.Delete(key)
	return nil
}

// Len counts stored entries, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
