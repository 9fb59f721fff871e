package events

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"
	"emr-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPChannel is the part of *amqp091.Channel the publisher uses.
type AMQPChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type rabbitMQEventPublisher struct {
	Channel AMQPChannel
	Queue   string
	Log     *zap.Logger
}

// NewRabbitMQEventPublisher opens a channel on conn and declares queue as
// durable before returning a publisher for it.
func NewRabbitMQEventPublisher(conn *amqp091.Connection, queue string, logger *zap.Logger) (contracts.EventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	_, err = channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	return NewChannelEventPublisher(channel, queue, logger), nil
}

func NewChannelEventPublisher(channel AMQPChannel, queue string, logger *zap.Logger) contracts.EventPublisher {
	return &rabbitMQEventPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *rabbitMQEventPublisher) Publish(ctx context.Context, event *models.DomainEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		MessageId:    event.ID,
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type": "JSON",
			"request_id":   requestID,
		},
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		p.Log.Error("rabbitMQEventPublisher.Publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, p.Queue),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("rabbitMQEventPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)
	return nil
}
