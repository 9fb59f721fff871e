package contracts

import (
	"context"
	"emr-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.DomainEvent) error
}
