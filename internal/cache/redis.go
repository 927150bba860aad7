package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/throttle-go/internal/throttle"
)

// Redis is a Redis-backed implementation of throttle.Cache. Counts are
// stored as plain integer strings and Redis owns key expiry.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed cache.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get returns the count stored under key. A missing key, a non-numeric
// value, and a transport error all fold into absence: reads never fail.
func (r *Redis) Get(ctx context.Context, key string) (uint64, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}

	count, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false
	}

	return count, true
}

func (r *Redis) Set(ctx context.Context, key string, value uint64, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Expire returns the remaining TTL for key. Redis answers negative
// durations for a missing key or a key without expiry, and TTL rounds to
// whole seconds, so a live key in its final sub-second answers zero. All of
// these fold into absence: a zero remaining must never be handed back as a
// live TTL, or a rewrite with it would persist the key forever.
func (r *Redis) Expire(ctx context.Context, key string) (time.Duration, bool) {
	remaining, err := r.client.TTL(ctx, key).Result()
	if err != nil || remaining <= 0 {
		return 0, false
	}

	return remaining, true
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// Compile-time check.
var _ throttle.Cache = (*Redis)(nil)
