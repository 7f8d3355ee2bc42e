package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by operation name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkpulse_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// RateLimitDenials counts requests rejected by the rate limiter per resource.
var RateLimitDenials = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inkpulse_rate_limit_denials_total",
	Help: "Total number of requests denied by the rate limiter",
}, []string{"resource"})

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
