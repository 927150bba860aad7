// Package throttle implements a fixed-window counting rate limiter keyed by
// client identity (typically an IP address), backed by an external
// TTL-capable cache.
//
// The window is anchored at the first recorded hit: subsequent hits rewrite
// the count with the window's remaining expiry rather than renewing it, so a
// blocked identity becomes allowed again only when the cache expires the
// entry. The algorithm's known weakness is boundary bursting (up to
// 2*limit-1 attempts across a window edge); that is a characteristic of
// fixed-window counting, not a defect.
package throttle

import (
	"context"
	"time"
)

// Throttle decides admission and tracks attempt counts for one identity
// against one cache. It holds only configuration; all mutable state lives in
// the cache, so a Throttle can be constructed per request.
type Throttle struct {
	identity string
	limit    uint64
	window   time.Duration
	prefix   string
}

// New creates a throttle for identity allowing at most limit attempts per
// window. The prefix namespaces cache keys to avoid collisions with
// unrelated entries.
//
// No validation is performed: a limit of 0 blocks the identity from the
// first CanGo call.
func New(identity string, limit uint64, window time.Duration, prefix string) *Throttle {
	return &Throttle{
		identity: identity,
		limit:    limit,
		window:   window,
		prefix:   prefix,
	}
}

// Key returns the cache key for this identity: prefix + identity.
func (t *Throttle) Key() string {
	return t.prefix + t.identity
}

// CanGo reports whether the identity may make another attempt. An absent
// cache entry counts as zero attempts. Read-only.
func (t *Throttle) CanGo(ctx context.Context, cache Cache) bool {
	count, _ := cache.Get(ctx, t.Key())

	return count < t.limit
}

// Attempts returns the number of attempts recorded in the current window,
// zero if the entry is absent or expired.
func (t *Throttle) Attempts(ctx context.Context, cache Cache) uint64 {
	count, _ := cache.Get(ctx, t.Key())

	return count
}

// ExpiresIn returns the remaining duration of the current window, or the
// configured window when the cache has no expiry recorded for the key.
func (t *Throttle) ExpiresIn(ctx context.Context, cache Cache) time.Duration {
	if remaining, ok := cache.Expire(ctx, t.Key()); ok {
		return remaining
	}

	return t.window
}

// Hit records an attempt. The first hit writes count 1 with a full window;
// later hits rewrite count+1 with the window's remaining expiry, keeping the
// window anchored at the first hit instead of sliding it forward.
//
// The read-then-write is not atomic: concurrent hits for the same identity
// can lose updates. The cache is the only synchronization point.
func (t *Throttle) Hit(ctx context.Context, cache Cache) error {
	key := t.Key()
	expire := t.ExpiresIn(ctx, cache)

	count, ok := cache.Get(ctx, key)
	if !ok {
		return cache.Set(ctx, key, 1, expire)
	}

	return cache.Set(ctx, key, count+1, expire)
}

// Remove clears the identity's attempt count unconditionally.
func (t *Throttle) Remove(ctx context.Context, cache Cache) error {
	return cache.Remove(ctx, t.Key())
}
