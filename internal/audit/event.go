package audit

import "time"

// Topics for audit events published by the server and consumed by the audit
// pipeline.
const (
	TopicLoginAttempt  = "login.attempt"
	TopicLimitExceeded = "throttle.limit_exceeded"
	TopicThrottleReset = "throttle.reset"
)

// LoginAttemptEvent is emitted for every login attempt, successful or not.
// Attempts is the count stored for the identity after the attempt was
// recorded (zero for a successful login, which clears the window).
type LoginAttemptEvent struct {
	EventID   string    `json:"eventId"`
	Identity  string    `json:"identity"`
	Username  string    `json:"username"`
	Success   bool      `json:"success"`
	Attempts  uint64    `json:"attempts"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	At        time.Time `json:"at"`
}

// LimitExceededEvent is emitted when a failed attempt exhausts the limit and
// the identity becomes blocked for the rest of its window.
type LimitExceededEvent struct {
	EventID       string    `json:"eventId"`
	Identity      string    `json:"identity"`
	Attempts      uint64    `json:"attempts"`
	Limit         uint64    `json:"limit"`
	WindowSeconds int64     `json:"windowSeconds"`
	ClientIP      string    `json:"clientIp"`
	UserAgent     string    `json:"userAgent"`
	At            time.Time `json:"at"`
}

// ThrottleResetEvent is emitted when an identity's window is cleared through
// the admin endpoint.
type ThrottleResetEvent struct {
	EventID  string    `json:"eventId"`
	Identity string    `json:"identity"`
	At       time.Time `json:"at"`
}
