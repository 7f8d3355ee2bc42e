package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiterRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestLimiter_FixedWindow(t *testing.T) {
	_, rdb := setupLimiterRedis(t)
	l := NewLimiter(rdb, 5, 30*time.Second)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		res := l.Allow(ctx, "10.0.0.1")
		assert.True(t, res.Allowed, "request %d should be allowed", i)
		assert.Empty(t, res.Message)
	}

	res := l.Allow(ctx, "10.0.0.1")
	assert.False(t, res.Allowed, "request 6 should be denied")
	assert.Equal(t, msgTooManyRequests, res.Message)
}

func TestLimiter_WindowExpiry(t *testing.T) {
	mr, rdb := setupLimiterRedis(t)
	l := NewLimiter(rdb, 2, 30*time.Second)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "addr").Allowed)
	assert.True(t, l.Allow(ctx, "addr").Allowed)
	assert.False(t, l.Allow(ctx, "addr").Allowed)

	mr.FastForward(31 * time.Second)

	assert.True(t, l.Allow(ctx, "addr").Allowed, "counter should expire with the window")
}

func TestLimiter_CounterCarriesWindowTTL(t *testing.T) {
	// An immortal counter would throttle the client forever; the first
	// hit in a window must leave the counter with the window's TTL.
	mr, rdb := setupLimiterRedis(t)
	l := NewLimiter(rdb, 5, 30*time.Second)

	require.True(t, l.Allow(context.Background(), "10.0.0.9").Allowed)
	assert.Equal(t, 30*time.Second, mr.TTL("rl:5:30:10.0.0.9"))
}

func TestLimiter_EmptyKey(t *testing.T) {
	_, rdb := setupLimiterRedis(t)
	l := NewLimiter(rdb, 5, time.Minute)

	res := l.Allow(context.Background(), "")
	assert.False(t, res.Allowed)
	assert.Equal(t, msgInvalidKey, res.Message)
}

func TestLimiter_PerInstanceConfiguration(t *testing.T) {
	// Two limiters with different budgets must count in separate windows
	// even for the same key: the constructor arguments are authoritative.
	_, rdb := setupLimiterRedis(t)
	ctx := context.Background()

	small := NewLimiter(rdb, 1, time.Minute)
	large := NewLimiter(rdb, 10, time.Minute)

	assert.True(t, small.Allow(ctx, "addr").Allowed)
	assert.False(t, small.Allow(ctx, "addr").Allowed)

	for i := 1; i <= 10; i++ {
		assert.True(t, large.Allow(ctx, "addr").Allowed, "request %d on the larger limiter", i)
	}
	assert.False(t, large.Allow(ctx, "addr").Allowed)
}

func TestLimiter_FailsClosed(t *testing.T) {
	t.Run("nil client", func(t *testing.T) {
		l := NewLimiter(nil, 5, time.Minute)
		res := l.Allow(context.Background(), "addr")
		assert.False(t, res.Allowed)
		assert.Equal(t, msgLimiterError, res.Message)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr, rdb := setupLimiterRedis(t)
		mr.Close()

		l := NewLimiter(rdb, 5, time.Minute)
		res := l.Allow(context.Background(), "addr")
		assert.False(t, res.Allowed)
		assert.Equal(t, msgLimiterError, res.Message)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	_, rdb := setupLimiterRedis(t)

	app := fiber.New()
	app.Get("/posts", RateLimit(NewLimiter(rdb, 5, 30*time.Second), "posts"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 1; i <= 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/posts", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i)
		_ = resp.Body.Close()
	}

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	_ = resp.Body.Close()
}
