package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Handler handles health check operations.
type Handler struct {
	cache Checker
}

// NewHandler creates a new health handler. The cache checker covers the
// throttle's backing store.
func NewHandler(cache Checker) *Handler {
	return &Handler{cache: cache}
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status string `json:"status"`
		Cache  string `json:"cache"`
	}
}

// Check reports the health of the service and its cache dependency. The
// service stays "degraded" rather than failing: reads fall back to absence,
// so throttling fails open while the cache is down.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if err := h.cache.Ping(ctx); err != nil {
		resp.Body.Cache = "unhealthy"
		resp.Body.Status = "degraded"
	} else {
		resp.Body.Cache = "healthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
