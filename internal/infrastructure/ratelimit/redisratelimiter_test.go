package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_Allow(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	t.Run("allows under the per-minute limit and blocks over it", func(t *testing.T) {
		limits := Limits{RequestsPerMinute: 5}

		for i := 0; i < 5; i++ {
			allowed, err := limiter.Allow(ctx, "user-1", limits)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i+1)
		}

		allowed, err := limiter.Allow(ctx, "user-1", limits)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("keys are isolated", func(t *testing.T) {
		limits := Limits{RequestsPerMinute: 1}

		allowed, err := limiter.Allow(ctx, "user-2", limits)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(ctx, "user-3", limits)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("zero limits disable gating", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			allowed, err := limiter.Allow(ctx, "user-4", Limits{})
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	})
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	client := setupTestRedis(t)
	limiter := NewRedisRateLimiter(client)
	ctx := context.Background()

	limits := Limits{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "user-5", limits)
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "user-5", limits)
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "user-5"))

	allowed, err = limiter.Allow(ctx, "user-5", limits)
	require.NoError(t, err)
	assert.True(t, allowed)

	remaining, err := limiter.GetRemaining(ctx, "user-5", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}
