package events

import (
	"context"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeChannel struct {
	queue     string
	published []amqp091.Publishing
	err       error
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.queue = key
	c.published = append(c.published, msg)
	return nil
}

func sampleEvent() *models.DomainEvent {
	return &models.DomainEvent{
		ID:          "6d1f3c2a-0e6b-4b8e-9d0f-6f1c8b1a2e33",
		Type:        constvars.EventMedicalRecordSubmitted,
		NIK:         "3201234567890123",
		WorkspaceID: "workspace-1",
		OccurredAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestRabbitMQEventPublisher_Publish(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "EMR_SVC_test")

	t.Run("Publishes Persistent JSON To Queue", func(t *testing.T) {
		channel := &fakeChannel{}
		publisher := NewChannelEventPublisher(channel, "emr.events", zap.NewNop())

		require.NoError(t, publisher.Publish(ctx, sampleEvent()))

		require.Len(t, channel.published, 1)
		message := channel.published[0]
		assert.Equal(t, "emr.events", channel.queue)
		assert.Equal(t, constvars.MIMEApplicationJSON, message.ContentType)
		assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
		assert.Equal(t, constvars.EventMedicalRecordSubmitted, message.Type)
		assert.Equal(t, "EMR_SVC_test", message.Headers["request_id"])

		var decoded models.DomainEvent
		require.NoError(t, json.Unmarshal(message.Body, &decoded))
		assert.Equal(t, "3201234567890123", decoded.NIK)
	})

	t.Run("Broker Error", func(t *testing.T) {
		channel := &fakeChannel{err: errors.New("channel closed")}
		publisher := NewChannelEventPublisher(channel, "emr.events", zap.NewNop())

		assert.Error(t, publisher.Publish(ctx, sampleEvent()))
	})
}

func TestLogEventPublisher_Publish(t *testing.T) {
	publisher := NewLogEventPublisher(zap.NewNop())
	assert.NoError(t, publisher.Publish(context.Background(), sampleEvent()))
}
