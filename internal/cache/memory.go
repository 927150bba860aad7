package cache

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/throttle-go/internal/throttle"
)

type entry struct {
	value    uint64
	deadline time.Time
}

// Memory is an in-memory implementation of throttle.Cache with per-key
// expiry. Expired entries are dropped lazily on access, which is enough for
// tests and single-process deployments.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
}

// NewMemory creates a new in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
	}
}

func (m *Memory) Get(_ context.Context, key string) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return 0, false
	}

	if !e.deadline.After(time.Now()) {
		delete(m.entries, key)

		return 0, false
	}

	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value uint64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		value:    value,
		deadline: time.Now().Add(ttl),
	}

	return nil
}

func (m *Memory) Expire(_ context.Context, key string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return 0, false
	}

	remaining := time.Until(e.deadline)
	if remaining <= 0 {
		delete(m.entries, key)

		return 0, false
	}

	return remaining, true
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Compile-time check.
var _ throttle.Cache = (*Memory)(nil)
