package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/throttle-go/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	attempts []*audit.LoginAttemptEvent
	exceeded []*audit.LimitExceededEvent
	resets   []*audit.ThrottleResetEvent
	saveErr  error
}

func (s *recordingStore) SaveLoginAttempt(_ context.Context, event *audit.LoginAttemptEvent) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.attempts = append(s.attempts, event)

	return nil
}

func (s *recordingStore) SaveLimitExceeded(_ context.Context, event *audit.LimitExceededEvent) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.exceeded = append(s.exceeded, event)

	return nil
}

func (s *recordingStore) SaveThrottleReset(_ context.Context, event *audit.ThrottleResetEvent) error {
	if s.saveErr != nil {
		return s.saveErr
	}

	s.resets = append(s.resets, event)

	return nil
}

func TestAttemptHandler(t *testing.T) {
	t.Run("saves the event", func(t *testing.T) {
		store := &recordingStore{}
		handler := audit.AttemptHandler(store)

		event := &audit.LoginAttemptEvent{
			EventID:  "evt-1",
			Identity: "203.0.113.7",
			Username: "alice",
			Attempts: 2,
			At:       time.Now(),
		}

		err := handler(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, store.attempts, 1)
		assert.Equal(t, event, store.attempts[0])
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &recordingStore{saveErr: errors.New("save error")}
		handler := audit.AttemptHandler(store)

		err := handler(context.Background(), &audit.LoginAttemptEvent{})

		assert.Error(t, err)
	})
}

func TestExceededHandler(t *testing.T) {
	t.Run("saves the event", func(t *testing.T) {
		store := &recordingStore{}
		handler := audit.ExceededHandler(store)

		event := &audit.LimitExceededEvent{
			EventID:  "evt-2",
			Identity: "203.0.113.7",
			Attempts: 5,
			Limit:    5,
		}

		err := handler(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, store.exceeded, 1)
		assert.Equal(t, event, store.exceeded[0])
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &recordingStore{saveErr: errors.New("save error")}
		handler := audit.ExceededHandler(store)

		err := handler(context.Background(), &audit.LimitExceededEvent{})

		assert.Error(t, err)
	})
}

func TestResetHandler(t *testing.T) {
	t.Run("saves the event", func(t *testing.T) {
		store := &recordingStore{}
		handler := audit.ResetHandler(store)

		event := &audit.ThrottleResetEvent{EventID: "evt-3", Identity: "203.0.113.7"}

		err := handler(context.Background(), event)

		require.NoError(t, err)
		require.Len(t, store.resets, 1)
		assert.Equal(t, event, store.resets[0])
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &recordingStore{saveErr: errors.New("save error")}
		handler := audit.ResetHandler(store)

		err := handler(context.Background(), &audit.ThrottleResetEvent{})

		assert.Error(t, err)
	})
}
