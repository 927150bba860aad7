package throttle_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/throttle-go/internal/cache"
	"github.com/serroba/throttle-go/internal/throttle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	th := throttle.New("127.0.0.1", 3, time.Minute, "login_")

	assert.Equal(t, "login_127.0.0.1", th.Key())
}

func TestCanGo(t *testing.T) {
	t.Run("allows identity that was never hit", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.1", 3, time.Minute, "test_")

		assert.True(t, th.CanGo(context.Background(), c))
	})

	t.Run("allows while under the limit", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.1", 3, time.Minute, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		require.NoError(t, th.Hit(context.Background(), c))

		assert.True(t, th.CanGo(context.Background(), c))
	})

	t.Run("blocks once the limit is reached", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.1", 3, time.Minute, "test_")

		for range 3 {
			require.NoError(t, th.Hit(context.Background(), c))
		}

		assert.False(t, th.CanGo(context.Background(), c))
	})

	t.Run("limit zero blocks from the start", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.1", 0, time.Minute, "test_")

		assert.False(t, th.CanGo(context.Background(), c))
	})

	t.Run("tracks identities independently", func(t *testing.T) {
		c := cache.NewMemory()
		first := throttle.New("127.0.0.1", 1, time.Minute, "test_")
		second := throttle.New("127.0.0.2", 1, time.Minute, "test_")

		require.NoError(t, first.Hit(context.Background(), c))

		assert.False(t, first.CanGo(context.Background(), c))
		assert.True(t, second.CanGo(context.Background(), c))
	})
}

func TestHit(t *testing.T) {
	t.Run("increments the stored count", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.2", 3, time.Minute, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		assert.Equal(t, uint64(1), th.Attempts(context.Background(), c))

		// A fresh throttle for the same identity shares the counter.
		th = throttle.New("127.0.0.2", 3, time.Minute, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		assert.Equal(t, uint64(2), th.Attempts(context.Background(), c))
	})

	t.Run("counts every hit within the window", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.2", 10, time.Minute, "test_")

		for range 5 {
			require.NoError(t, th.Hit(context.Background(), c))
		}

		assert.Equal(t, uint64(5), th.Attempts(context.Background(), c))
	})

	t.Run("preserves the remaining expiry instead of renewing the window", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.3", 10, 200*time.Millisecond, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		time.Sleep(100 * time.Millisecond)
		require.NoError(t, th.Hit(context.Background(), c))

		remaining := th.ExpiresIn(context.Background(), c)

		assert.LessOrEqual(t, remaining, 110*time.Millisecond,
			"second hit must keep the window anchored at the first hit")
	})

	t.Run("propagates cache write failures", func(t *testing.T) {
		c := &failingCache{}
		th := throttle.New("127.0.0.3", 3, time.Minute, "test_")

		assert.Error(t, th.Hit(context.Background(), c))
	})
}

func TestExpiresIn(t *testing.T) {
	t.Run("returns the configured window when no entry exists", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.5", 3, time.Minute, "test_")

		assert.Equal(t, time.Minute, th.ExpiresIn(context.Background(), c))
	})

	t.Run("returns the remaining expiry of an active window", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.5", 3, time.Minute, "test_")

		require.NoError(t, th.Hit(context.Background(), c))

		remaining := th.ExpiresIn(context.Background(), c)

		assert.Greater(t, remaining, time.Duration(0))
		assert.LessOrEqual(t, remaining, time.Minute)
	})
}

func TestRemove(t *testing.T) {
	t.Run("clears the count as if never hit", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.4", 3, time.Minute, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		require.Equal(t, uint64(1), th.Attempts(context.Background(), c))

		require.NoError(t, th.Remove(context.Background(), c))

		_, ok := c.Get(context.Background(), th.Key())
		assert.False(t, ok)
		assert.True(t, th.CanGo(context.Background(), c))
	})

	t.Run("propagates cache delete failures", func(t *testing.T) {
		c := &failingCache{}
		th := throttle.New("127.0.0.4", 3, time.Minute, "test_")

		assert.Error(t, th.Remove(context.Background(), c))
	})
}

func TestWindowExpiry(t *testing.T) {
	t.Run("blocked identity becomes allowed after the window elapses", func(t *testing.T) {
		c := cache.NewMemory()
		th := throttle.New("127.0.0.6", 2, 50*time.Millisecond, "test_")

		require.NoError(t, th.Hit(context.Background(), c))
		require.NoError(t, th.Hit(context.Background(), c))
		require.False(t, th.CanGo(context.Background(), c))

		time.Sleep(60 * time.Millisecond)

		assert.True(t, th.CanGo(context.Background(), c))
		assert.Equal(t, uint64(0), th.Attempts(context.Background(), c))
	})
}

// failingCache reports absence on reads and fails every write.
type failingCache struct{}

var errCacheDown = assert.AnError

func (f *failingCache) Get(context.Context, string) (uint64, bool) { return 0, false }

func (f *failingCache) Set(context.Context, string, uint64, time.Duration) error {
	return errCacheDown
}

func (f *failingCache) Expire(context.Context, string) (time.Duration, bool) { return 0, false }

func (f *failingCache) Remove(context.Context, string) error { return errCacheDown }
