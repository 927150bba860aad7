package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/throttle-go/internal/audit"
)

// Postgres persists audit events to the audit_events table.
//
// Expected schema:
//
//	CREATE TABLE audit_events (
//	    event_id       UUID PRIMARY KEY,
//	    event_type     TEXT NOT NULL,
//	    identity       TEXT NOT NULL,
//	    username       TEXT,
//	    success        BOOLEAN,
//	    attempts       BIGINT,
//	    max_attempts   BIGINT,
//	    window_seconds BIGINT,
//	    client_ip      TEXT,
//	    user_agent     TEXT,
//	    occurred_at    TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed audit store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveLoginAttempt(ctx context.Context, event *audit.LoginAttemptEvent) error {
	query := `
		INSERT INTO audit_events (event_id, event_type, identity, username, success, attempts, client_ip, user_agent, occurred_at)
		VALUES ($1, 'login_attempt', $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Identity,
		event.Username,
		event.Success,
		event.Attempts,
		event.ClientIP,
		event.UserAgent,
		event.At,
	)

	return err
}

func (p *Postgres) SaveLimitExceeded(ctx context.Context, event *audit.LimitExceededEvent) error {
	query := `
		INSERT INTO audit_events (event_id, event_type, identity, attempts, max_attempts, window_seconds, client_ip, user_agent, occurred_at)
		VALUES ($1, 'limit_exceeded', $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Identity,
		event.Attempts,
		event.Limit,
		event.WindowSeconds,
		event.ClientIP,
		event.UserAgent,
		event.At,
	)

	return err
}

func (p *Postgres) SaveThrottleReset(ctx context.Context, event *audit.ThrottleResetEvent) error {
	query := `
		INSERT INTO audit_events (event_id, event_type, identity, occurred_at)
		VALUES ($1, 'throttle_reset', $2, $3)
		ON CONFLICT (event_id) DO NOTHING
	`

	_, err := p.pool.Exec(ctx, query,
		event.EventID,
		event.Identity,
		event.At,
	)

	return err
}

// Compile-time check.
var _ audit.Store = (*Postgres)(nil)
