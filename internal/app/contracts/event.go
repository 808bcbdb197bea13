package contracts

import (
	"clinic-admin-service/internal/app/models"
	"context"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.DomainEvent) error
}

type EventService interface {
	Emit(ctx context.Context, session *models.Session, entity, action, entityID string, payload interface{})
}
