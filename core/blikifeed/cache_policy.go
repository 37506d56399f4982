// ABOUTME: Public cache policy of feed responses
// ABOUTME: Applies the lifetime floor and cap and renders Cache-Control

package blikifeed

import (
	"fmt"
	"time"
)

// DefaultMinMaxAge is the cache lifetime floor for this frequently hit endpoint
const DefaultMinMaxAge = 15 * time.Second

// MaxCacheAge caps caller-requested lifetimes
const MaxCacheAge = 365 * 24 * time.Hour

// CachePolicy describes the public caching of a feed response
type CachePolicy struct {
	SMaxAge time.Duration
	MaxAge  time.Duration
}

// NewCachePolicy builds a public policy from the lifetimes the caller asked
// for (in seconds, 0 when absent). Neither lifetime goes below floor or
// above MaxCacheAge.
func NewCachePolicy(sMaxAge, maxAge int, floor time.Duration) CachePolicy {
	if floor <= 0 {
		floor = DefaultMinMaxAge
	}
	return CachePolicy{
		SMaxAge: atLeast(seconds(sMaxAge), floor),
		MaxAge:  atLeast(seconds(maxAge), floor),
	}
}

// seconds converts a caller value without overflowing time.Duration
func seconds(n int) time.Duration {
	if n > int(MaxCacheAge/time.Second) {
		return MaxCacheAge
	}
	return time.Duration(n) * time.Second
}

// Header renders the Cache-Control header value
func (p CachePolicy) Header() string {
	return fmt.Sprintf("public, s-maxage=%d, max-age=%d", int(p.SMaxAge.Seconds()), int(p.MaxAge.Seconds()))
}

func atLeast(d, floor time.Duration) time.Duration {
	if d < floor {
		return floor
	}
	return d
}
