package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/throttle-go/internal/throttle"
	"go.uber.org/zap"
)

// Config defines the per-client throttle applied by the middleware.
type Config struct {
	// Limit is the maximum number of requests per window. Zero blocks
	// everything.
	Limit uint64
	// Window is the fixed period after which a client's count resets.
	Window time.Duration
	// KeyPrefix namespaces the middleware's cache keys.
	KeyPrefix string
}

// Throttle returns a Huma middleware that applies a fixed-window throttle
// per client IP. Blocked clients receive 429 with a Retry-After header; a
// cache write failure surfaces as 500 before the handler runs.
func Throttle(
	api huma.API,
	cfg Config,
	cache throttle.Cache,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		ip := clientIP(ctx)
		th := throttle.New(ip, cfg.Limit, cfg.Window, cfg.KeyPrefix)

		if !th.CanGo(ctx.Context(), cache) {
			retryAfter := th.ExpiresIn(ctx.Context(), cache)
			logger.Warn("request throttled",
				zap.String("client_ip", ip),
				zap.Uint64("limit", cfg.Limit),
				zap.Duration("retry_after", retryAfter),
			)
			ctx.SetHeader("Retry-After", strconv.FormatInt(ceilSeconds(retryAfter), 10))
			_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, "rate limit exceeded")

			return
		}

		if err := th.Hit(ctx.Context(), cache); err != nil {
			logger.Error("failed to record request",
				zap.String("client_ip", ip),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		next(ctx)
	}
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}

// clientIP extracts the client IP from the request, considering proxies.
func clientIP(ctx huma.Context) string {
	// Check X-Forwarded-For header (may contain multiple IPs)
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client)
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	// Check X-Real-IP header
	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	// Fall back to remote addr
	host := ctx.Host()
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		return host[:idx]
	}

	return host
}
