// Package interfaces holds the ports the feed service depends on: the wiki
// store, the render cache and the logger. Implementations live under
// infrastructure/.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache: key not found")

// Cache stores rendered feed documents by key.
//
// Backends must report an absent key as ErrCacheMiss so callers can tell a
// miss from a broken backend. A zero ttl keeps the entry until evicted, and
// deleting a missing key is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
