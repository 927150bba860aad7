package messaging_test

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/serroba/throttle-go/internal/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	messages   []*message.Message
	topic      string
	publishErr error
	closeErr   error
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	if p.publishErr != nil {
		return p.publishErr
	}

	p.topic = topic
	p.messages = append(p.messages, msgs...)

	return nil
}

func (p *recordingPublisher) Close() error {
	return p.closeErr
}

type attemptEvent struct {
	Identity string `json:"identity"`
	Success  bool   `json:"success"`
}

func TestNewPublishFunc(t *testing.T) {
	t.Run("encodes and publishes the event", func(t *testing.T) {
		pub := &recordingPublisher{}
		publish := messaging.NewPublishFunc[attemptEvent](pub, "login.attempt")

		err := publish(&attemptEvent{Identity: "203.0.113.7", Success: false})

		require.NoError(t, err)
		assert.Equal(t, "login.attempt", pub.topic)
		require.Len(t, pub.messages, 1)
		assert.Contains(t, string(pub.messages[0].Payload), `"identity":"203.0.113.7"`)
		assert.NotEmpty(t, pub.messages[0].UUID)
	})

	t.Run("stamps the topic into message metadata", func(t *testing.T) {
		pub := &recordingPublisher{}
		publish := messaging.NewPublishFunc[attemptEvent](pub, "login.attempt")

		err := publish(&attemptEvent{Identity: "203.0.113.7"})

		require.NoError(t, err)
		assert.Equal(t, "login.attempt", pub.messages[0].Metadata.Get("topic"))
	})

	t.Run("returns error when publish fails", func(t *testing.T) {
		pub := &recordingPublisher{publishErr: errors.New("publish error")}
		publish := messaging.NewPublishFunc[attemptEvent](pub, "login.attempt")

		err := publish(&attemptEvent{Identity: "203.0.113.7"})

		assert.Error(t, err)
	})
}

func TestPublisherGroup(t *testing.T) {
	t.Run("hands out the underlying publisher", func(t *testing.T) {
		pub := &recordingPublisher{}
		group := messaging.NewPublisherGroup(pub)

		assert.Equal(t, pub, group.Publisher())
	})

	t.Run("shutdown closes the publisher", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&recordingPublisher{})

		assert.NoError(t, group.Shutdown())
	})

	t.Run("shutdown surfaces close errors", func(t *testing.T) {
		group := messaging.NewPublisherGroup(&recordingPublisher{closeErr: errors.New("close error")})

		assert.Error(t, group.Shutdown())
	})
}
