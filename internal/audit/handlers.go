package audit

import (
	"context"

	"github.com/serroba/throttle-go/internal/messaging"
)

// AttemptHandler returns a messaging handler that persists login attempts.
func AttemptHandler(store Store) messaging.Handler[LoginAttemptEvent] {
	return func(ctx context.Context, event *LoginAttemptEvent) error {
		return store.SaveLoginAttempt(ctx, event)
	}
}

// ExceededHandler returns a messaging handler that persists limit-exceeded
// events.
func ExceededHandler(store Store) messaging.Handler[LimitExceededEvent] {
	return func(ctx context.Context, event *LimitExceededEvent) error {
		return store.SaveLimitExceeded(ctx, event)
	}
}

// ResetHandler returns a messaging handler that persists throttle resets.
func ResetHandler(store Store) messaging.Handler[ThrottleResetEvent] {
	return func(ctx context.Context, event *ThrottleResetEvent) error {
		return store.SaveThrottleReset(ctx, event)
	}
}
