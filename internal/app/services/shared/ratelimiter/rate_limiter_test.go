package ratelimiter

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryRedis) Get(ctx context.Context, key string) (string, error) {
	return m.values[key], nil
}

func (m *memoryRedis) Increment(ctx context.Context, key string) (int64, error) {
	current, _ := strconv.ParseInt(m.values[key], 10, 64)
	current++
	m.values[key] = strconv.FormatInt(current, 10)
	return current, nil
}

func (m *memoryRedis) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	if _, ok := m.ttls[key]; !ok {
		m.ttls[key] = ttl
	}
	return m.Increment(ctx, key)
}

func (m *memoryRedis) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func TestFixedWindowLimiter(t *testing.T) {
	ctx := context.Background()
	fixedNow := time.Date(2024, 5, 1, 10, 0, 30, 0, time.UTC)

	newLimiter := func() (*FixedWindowLimiter, *memoryRedis) {
		redis := newMemoryRedis()
		limiter := NewFixedWindowLimiter(redis, zap.NewNop())
		limiter.now = func() time.Time { return fixedNow }
		return limiter, redis
	}

	input := &HitInput{Group: "login-failure", Subject: " Jane@Example.com ", WindowDurationSec: 60, MaxQuota: 2}

	t.Run("Allows Hits Within Quota", func(t *testing.T) {
		limiter, redis := newLimiter()

		first, err := limiter.Hit(ctx, input)
		require.NoError(t, err)
		second, err := limiter.Hit(ctx, input)
		require.NoError(t, err)

		assert.True(t, first.Allowed, "first hit should be allowed")
		assert.True(t, second.Allowed, "second hit should be allowed")
		assert.Equal(t, int64(2), second.Count)

		windowID := fixedNow.Unix() / 60
		key := "ratelimit:LOGIN-FAILURE:jane@example.com:" + strconv.FormatInt(windowID, 10)
		assert.Equal(t, "2", redis.values[key], "subject should be normalized in the key")
		assert.Equal(t, 61*time.Second, redis.ttls[key])
	})

	t.Run("Rejects Hit Over Quota With Retry After", func(t *testing.T) {
		limiter, _ := newLimiter()

		for i := 0; i < 2; i++ {
			_, err := limiter.Hit(ctx, input)
			require.NoError(t, err)
		}
		output, err := limiter.Hit(ctx, input)
		require.NoError(t, err)

		assert.False(t, output.Allowed)
		assert.Equal(t, 31, output.RetryAfterSecs, "retry should point at the next window boundary")
	})

	t.Run("Exceeded Does Not Record Hits", func(t *testing.T) {
		limiter, _ := newLimiter()

		exceeded, _, err := limiter.Exceeded(ctx, input)
		require.NoError(t, err)
		assert.False(t, exceeded)

		for i := 0; i < 2; i++ {
			_, err := limiter.Hit(ctx, input)
			require.NoError(t, err)
		}
		exceeded, retryAfter, err := limiter.Exceeded(ctx, input)
		require.NoError(t, err)
		assert.True(t, exceeded)
		assert.Equal(t, 31, retryAfter)
	})

	t.Run("Reset Clears Window", func(t *testing.T) {
		limiter, _ := newLimiter()

		for i := 0; i < 3; i++ {
			_, err := limiter.Hit(ctx, input)
			require.NoError(t, err)
		}
		require.NoError(t, limiter.Reset(ctx, input))

		exceeded, _, err := limiter.Exceeded(ctx, input)
		require.NoError(t, err)
		assert.False(t, exceeded, "quota should be available again after reset")
	})

	t.Run("Zero Quota Disables Limiting", func(t *testing.T) {
		limiter, _ := newLimiter()

		output, err := limiter.Hit(ctx, &HitInput{Group: "x", Subject: "y"})
		require.NoError(t, err)
		assert.True(t, output.Allowed)
	})
}
