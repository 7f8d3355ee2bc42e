package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"inkpulse/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Rate limiter denial messages returned to clients.
const (
	msgInvalidKey      = "Invalid key for rate limiting."
	msgTooManyRequests = "Too many requests. Please try again later."
	msgLimiterError    = "An error occurred while applying rate limiting."
)

// Limiter is a fixed-window request counter backed by Redis. Each instance
// owns its configuration: Points requests are allowed per Window, counted
// from the first request in the window. Configuration is never overridden
// by package state.
type Limiter struct {
	rdb    *redis.Client
	points int
	window time.Duration
}

// LimitResult reports the outcome of one Allow call. Message is
// client-safe and set only on denial.
type LimitResult struct {
	Allowed bool
	Message string
}

// NewLimiter creates a limiter allowing points requests per window.
func NewLimiter(rdb *redis.Client, points int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, points: points, window: window}
}

// Allow consumes one request slot for key. An empty key is always denied.
// Any backing-store failure is treated as a denial with a generic message
// (fails closed); the cause is logged, never returned to the caller.
func (l *Limiter) Allow(ctx context.Context, key string) LimitResult {
	if key == "" {
		Logger.WarnContext(ctx, "rate limiter called with empty key")
		return LimitResult{Allowed: false, Message: msgInvalidKey}
	}
	if l.rdb == nil {
		Logger.ErrorContext(ctx, "rate limiter has no redis client")
		return LimitResult{Allowed: false, Message: msgLimiterError}
	}

	// Counter key is scoped by the (points, window) pair so two limiter
	// instances with different budgets never share a window.
	counterKey := fmt.Sprintf("rl:%d:%d:%s", l.points, int(l.window.Seconds()), key)

	cnt, err := l.rdb.Incr(ctx, counterKey).Result()
	if err != nil {
		Logger.ErrorContext(ctx, "rate limiter redis error", slog.String("error", err.Error()))
		return LimitResult{Allowed: false, Message: msgLimiterError}
	}
	if cnt == 1 {
		// A counter that never expires throttles this client forever.
		if expErr := l.rdb.Expire(ctx, counterKey, l.window).Err(); expErr != nil {
			Logger.ErrorContext(ctx, "rate limiter expire failed",
				slog.String("key", counterKey),
				slog.String("error", expErr.Error()))
		}
	}
	if cnt > int64(l.points) {
		Logger.WarnContext(ctx, "rate limit exceeded", slog.String("key", key))
		return LimitResult{Allowed: false, Message: msgTooManyRequests}
	}
	return LimitResult{Allowed: true}
}

// RateLimit returns a Fiber middleware enforcing l per client address for
// the named endpoint group. Each resource counts its own window; denials
// short-circuit before the handler runs.
func RateLimit(l *Limiter, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := ""
		if addr := clientAddr(c); addr != "" {
			key = resource + ":" + addr
		}
		res := l.Allow(c.UserContext(), key)
		if !res.Allowed {
			RateLimitDenials.WithLabelValues(resource).Inc()
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError(res.Message))
		}
		return c.Next()
	}
}

// clientAddr derives the limiter key from the caller's source address,
// preferring the first X-Forwarded-For hop when present.
func clientAddr(c *fiber.Ctx) string {
	if ips := c.IPs(); len(ips) > 0 {
		return ips[0]
	}
	return c.IP()
}
