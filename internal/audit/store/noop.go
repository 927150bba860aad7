package store

import (
	"context"

	"github.com/serroba/throttle-go/internal/audit"
	"go.uber.org/zap"
)

// Noop is a no-op implementation of audit.Store that only logs events. Used
// when no Postgres DSN is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op audit store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLoginAttempt(_ context.Context, event *audit.LoginAttemptEvent) error {
	n.logger.Info("login attempt event received",
		zap.String("identity", event.Identity),
		zap.String("username", event.Username),
		zap.Bool("success", event.Success),
		zap.Uint64("attempts", event.Attempts),
		zap.Time("at", event.At),
	)

	return nil
}

func (n *Noop) SaveLimitExceeded(_ context.Context, event *audit.LimitExceededEvent) error {
	n.logger.Info("limit exceeded event received",
		zap.String("identity", event.Identity),
		zap.Uint64("attempts", event.Attempts),
		zap.Uint64("limit", event.Limit),
		zap.Int64("windowSeconds", event.WindowSeconds),
		zap.Time("at", event.At),
	)

	return nil
}

func (n *Noop) SaveThrottleReset(_ context.Context, event *audit.ThrottleResetEvent) error {
	n.logger.Info("throttle reset event received",
		zap.String("identity", event.Identity),
		zap.Time("at", event.At),
	)

	return nil
}

// Compile-time check.
var _ audit.Store = (*Noop)(nil)
