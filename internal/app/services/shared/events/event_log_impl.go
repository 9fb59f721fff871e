package events

import (
	"context"
	"emr-service/internal/app/contracts"
	"emr-service/internal/app/models"
	"emr-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type logEventPublisher struct {
	Log *zap.Logger
}

// NewLogEventPublisher writes events to the log. It is used when RabbitMQ
// is disabled.
func NewLogEventPublisher(logger *zap.Logger) contracts.EventPublisher {
	return &logEventPublisher{Log: logger}
}

func (p *logEventPublisher) Publish(ctx context.Context, event *models.DomainEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("logEventPublisher.Publish",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventIDKey, event.ID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingNIKKey, event.NIK),
		zap.String(constvars.LoggingWorkspaceIDKey, event.WorkspaceID),
		zap.String(constvars.LoggingMessageKey, event.Message),
	)
	return nil
}
