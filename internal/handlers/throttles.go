package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/throttle-go/internal/audit"
	"github.com/serroba/throttle-go/internal/messaging"
	"github.com/serroba/throttle-go/internal/throttle"
	"go.uber.org/zap"
)

// ThrottleHandler exposes admin operations over login throttles: inspecting
// an identity's current window and clearing it.
type ThrottleHandler struct {
	cache        throttle.Cache
	policy       ThrottlePolicy
	publishReset messaging.Publish[audit.ThrottleResetEvent]
	logger       *zap.Logger
}

// NewThrottleHandler creates a new throttle admin handler.
func NewThrottleHandler(
	cache throttle.Cache,
	policy ThrottlePolicy,
	publishReset messaging.Publish[audit.ThrottleResetEvent],
	logger *zap.Logger,
) *ThrottleHandler {
	return &ThrottleHandler{
		cache:        cache,
		policy:       policy,
		publishReset: publishReset,
		logger:       logger,
	}
}

// Status reports the current window for an identity. An identity that was
// never hit reports zero attempts and the full window.
func (h *ThrottleHandler) Status(ctx context.Context, req *ThrottleStatusRequest) (*ThrottleStatusResponse, error) {
	th := h.policy.For(req.Identity)

	resp := &ThrottleStatusResponse{}
	resp.Body.Identity = req.Identity
	resp.Body.Attempts = th.Attempts(ctx, h.cache)
	resp.Body.Limit = h.policy.Limit
	resp.Body.Allowed = th.CanGo(ctx, h.cache)
	resp.Body.ExpiresInSeconds = int64(th.ExpiresIn(ctx, h.cache) / time.Second)

	return resp, nil
}

// Reset clears an identity's window, unblocking it immediately.
func (h *ThrottleHandler) Reset(ctx context.Context, req *ResetThrottleRequest) (*struct{}, error) {
	th := h.policy.For(req.Identity)

	if err := th.Remove(ctx, h.cache); err != nil {
		h.logger.Error("failed to reset throttle",
			zap.String("identity", req.Identity),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to reset throttle")
	}

	event := &audit.ThrottleResetEvent{
		EventID:  uuid.NewString(),
		Identity: req.Identity,
		At:       time.Now(),
	}
	if err := h.publishReset(event); err != nil {
		h.logger.Error("failed to publish throttle reset event",
			zap.String("identity", req.Identity),
			zap.Error(err),
		)
	}

	return nil, nil
}
