package audit

import "context"

// Store defines the interface for persisting audit events.
type Store interface {
	SaveLoginAttempt(ctx context.Context, event *LoginAttemptEvent) error
	SaveLimitExceeded(ctx context.Context, event *LimitExceededEvent) error
	SaveThrottleReset(ctx context.Context, event *ThrottleResetEvent) error
}
