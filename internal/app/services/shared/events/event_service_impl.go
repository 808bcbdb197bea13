package events

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type eventService struct {
	Publisher contracts.EventPublisher
	Log       *zap.Logger
	now       func() time.Time
}

func NewEventService(publisher contracts.EventPublisher, logger *zap.Logger) contracts.EventService {
	return &eventService{
		Publisher: publisher,
		Log:       logger,
		now:       time.Now,
	}
}

// Emit publishes a domain event for a completed write. Publishing failures are
// logged and never reach the caller.
func (s *eventService) Emit(ctx context.Context, session *models.Session, entity, action, entityID string, payload interface{}) {
	requestID := utils.GetRequestID(ctx)

	event := &models.DomainEvent{
		Name:       fmt.Sprintf("%s.%s", entity, action),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		RequestID:  requestID,
		OccurredAt: s.now().UTC(),
	}
	if session != nil {
		event.ActorID = session.UserID
		event.TenantID = session.TenantID
	}

	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			s.Log.Error("eventService.Emit error marshalling payload",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingEventKey, event.Name),
				zap.Error(err),
			)
			return
		}
		event.Payload = body
	}

	if err := s.Publisher.Publish(ctx, event); err != nil {
		s.Log.Error("eventService.Emit error publishing event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventKey, event.Name),
			zap.String(constvars.LoggingEntityIDKey, entityID),
			zap.Error(err),
		)
		return
	}

	s.Log.Info("eventService.Emit event published",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventKey, event.Name),
		zap.String(constvars.LoggingEntityIDKey, entityID),
	)
}
