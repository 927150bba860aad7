package handlers

import (
	"time"

	"github.com/serroba/throttle-go/internal/throttle"
)

// ThrottlePolicy is the throttle configuration shared by the login and admin
// handlers: how many failed attempts an identity gets per window, and the
// cache-key namespace.
type ThrottlePolicy struct {
	Limit     uint64
	Window    time.Duration
	KeyPrefix string
}

// For builds the throttle for one identity under this policy.
func (p ThrottlePolicy) For(identity string) *throttle.Throttle {
	return throttle.New(identity, p.Limit, p.Window, p.KeyPrefix)
}
