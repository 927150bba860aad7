package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/serroba/throttle-go/internal/audit"
	"github.com/serroba/throttle-go/internal/messaging"
	"github.com/serroba/throttle-go/internal/throttle"
	"go.uber.org/zap"
)

// TokenGenerator generates opaque session tokens.
type TokenGenerator func() string

// AuthHandler guards the login endpoint with a per-IP fixed-window throttle:
// failed attempts are counted, a successful login clears the window.
type AuthHandler struct {
	cache           throttle.Cache
	policy          ThrottlePolicy
	verifier        CredentialVerifier
	generateToken   TokenGenerator
	publishAttempt  messaging.Publish[audit.LoginAttemptEvent]
	publishExceeded messaging.Publish[audit.LimitExceededEvent]
	logger          *zap.Logger
}

// NewAuthHandler creates a new login handler.
func NewAuthHandler(
	cache throttle.Cache,
	policy ThrottlePolicy,
	verifier CredentialVerifier,
	generateToken TokenGenerator,
	publishAttempt messaging.Publish[audit.LoginAttemptEvent],
	publishExceeded messaging.Publish[audit.LimitExceededEvent],
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		cache:           cache,
		policy:          policy,
		verifier:        verifier,
		generateToken:   generateToken,
		publishAttempt:  publishAttempt,
		publishExceeded: publishExceeded,
		logger:          logger,
	}
}

// Login verifies credentials for a client. Attempts from a blocked IP are
// rejected with 429 before credentials are checked.
func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	meta := RequestMetaFromContext(ctx)
	th := h.policy.For(meta.ClientIP)

	if !th.CanGo(ctx, h.cache) {
		retryAfter := ceilSeconds(th.ExpiresIn(ctx, h.cache))

		return nil, huma.ErrorWithHeaders(
			huma.Error429TooManyRequests("too many failed attempts, try again later"),
			http.Header{"Retry-After": []string{strconv.FormatInt(retryAfter, 10)}},
		)
	}

	ok, err := h.verifier.Verify(ctx, req.Body.Username, req.Body.Password)
	if err != nil {
		h.logger.Error("credential verification failed",
			zap.String("username", req.Body.Username),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to verify credentials")
	}

	if !ok {
		return nil, h.recordFailure(ctx, th, req.Body.Username, meta)
	}

	// Success clears the window so earlier failures stop counting.
	if err := th.Remove(ctx, h.cache); err != nil {
		h.logger.Error("failed to clear throttle",
			zap.String("identity", meta.ClientIP),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to clear throttle")
	}

	h.publishLoginAttempt(req.Body.Username, true, 0, meta)

	resp := &LoginResponse{}
	resp.Body.Token = h.generateToken()

	return resp, nil
}

// recordFailure counts the failed attempt and always returns the error the
// caller should surface.
func (h *AuthHandler) recordFailure(
	ctx context.Context,
	th *throttle.Throttle,
	username string,
	meta RequestMeta,
) error {
	if err := th.Hit(ctx, h.cache); err != nil {
		h.logger.Error("failed to record attempt",
			zap.String("identity", meta.ClientIP),
			zap.Error(err),
		)

		return huma.Error500InternalServerError("failed to record attempt")
	}

	attempts := th.Attempts(ctx, h.cache)
	h.publishLoginAttempt(username, false, attempts, meta)

	if !th.CanGo(ctx, h.cache) {
		h.logger.Warn("login throttle limit reached",
			zap.String("identity", meta.ClientIP),
			zap.Uint64("attempts", attempts),
			zap.Uint64("limit", h.policy.Limit),
		)

		event := &audit.LimitExceededEvent{
			EventID:       uuid.NewString(),
			Identity:      meta.ClientIP,
			Attempts:      attempts,
			Limit:         h.policy.Limit,
			WindowSeconds: int64(h.policy.Window / time.Second),
			ClientIP:      meta.ClientIP,
			UserAgent:     meta.UserAgent,
			At:            time.Now(),
		}
		if err := h.publishExceeded(event); err != nil {
			h.logger.Error("failed to publish limit exceeded event",
				zap.String("identity", meta.ClientIP),
				zap.Error(err),
			)
		}
	}

	return huma.Error401Unauthorized("invalid credentials")
}

func ceilSeconds(d time.Duration) int64 {
	return int64((d + time.Second - 1) / time.Second)
}

func (h *AuthHandler) publishLoginAttempt(
	username string,
	success bool,
	attempts uint64,
	meta RequestMeta,
) {
	event := &audit.LoginAttemptEvent{
		EventID:   uuid.NewString(),
		Identity:  meta.ClientIP,
		Username:  username,
		Success:   success,
		Attempts:  attempts,
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		At:        time.Now(),
	}

	if err := h.publishAttempt(event); err != nil {
		h.logger.Error("failed to publish login attempt event",
			zap.String("identity", event.Identity),
			zap.Error(err),
		)
	}
}
