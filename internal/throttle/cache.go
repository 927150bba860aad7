package throttle

import (
	"context"
	"time"
)

// Cache is the external key-value collaborator attempt counts live in.
// Implementations own key expiry, persistence, and serialization; the
// throttle only reads and rewrites counts through this contract.
//
// Reads never fail: a missing key, an expired key, or an unreachable backend
// all surface as absence, which callers fold into a default.
type Cache interface {
	// Get returns the stored count for key, or false if the key is absent.
	Get(ctx context.Context, key string) (uint64, bool)

	// Set stores value under key with the given time-to-live, overwriting
	// any previous value and TTL for that key.
	Set(ctx context.Context, key string, value uint64, ttl time.Duration) error

	// Expire returns the remaining time-to-live for key, or false if the key
	// has no entry or no TTL recorded.
	Expire(ctx context.Context, key string) (time.Duration, bool)

	// Remove deletes the entry for key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
