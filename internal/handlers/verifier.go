package handlers

import (
	"context"
	"crypto/subtle"
)

// CredentialVerifier checks a username/password pair.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

// StaticVerifier verifies credentials against a fixed in-memory set. Meant
// for demo deployments; real deployments plug in their own verifier.
type StaticVerifier struct {
	users map[string]string
}

// NewStaticVerifier creates a verifier over a username -> password map.
func NewStaticVerifier(users map[string]string) *StaticVerifier {
	return &StaticVerifier{users: users}
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (bool, error) {
	expected, ok := v.users[username]
	if !ok {
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1, nil
}

// Compile-time check.
var _ CredentialVerifier = (*StaticVerifier)(nil)
