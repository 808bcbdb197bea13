package notifications

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// recipientPaths are the event fields naming users who should hear about it.
var recipientPaths = []string{"payload.patient_id", "payload.doctor_id"}

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	Log                    *zap.Logger
	now                    func() time.Time
}

func NewNotificationUsecase(notificationRepository contracts.NotificationRepository, logger *zap.Logger) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		Log:                    logger,
		now:                    time.Now,
	}
}

func (uc *notificationUsecase) FindAll(ctx context.Context, session *models.Session, request *requests.FindNotifications) ([]models.Notification, int, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if session == nil {
		return nil, 0, exceptions.ErrTokenMissing(nil)
	}
	request.RecipientID = session.UserID

	notifications, total, err := uc.NotificationRepository.FindByRecipient(ctx, request)
	if err != nil {
		uc.Log.Error("notificationUsecase.FindAll error finding notifications",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("notificationUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(notifications)),
		zap.Int(constvars.LoggingTotalKey, total),
	)
	return notifications, total, nil
}

func (uc *notificationUsecase) MarkRead(ctx context.Context, session *models.Session, notificationID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	if session == nil {
		return exceptions.ErrTokenMissing(nil)
	}

	found, err := uc.NotificationRepository.MarkRead(ctx, session.UserID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityNotification)
	}
	return nil
}

// HandleEvent turns one published domain event into a notification for every
// patient or doctor it names, except the user who caused it.
func (uc *notificationUsecase) HandleEvent(ctx context.Context, body []byte) error {
	if !gjson.ValidBytes(body) {
		return exceptions.ErrCannotParseJSON(errors.New("event body is not valid JSON"))
	}

	event := gjson.ParseBytes(body)
	name := event.Get("name").String()
	entity := event.Get("entity").String()
	action := event.Get("action").String()
	entityID := event.Get("entity_id").String()
	actorID := event.Get("actor_id").String()

	seen := make(map[string]bool, len(recipientPaths))
	notifications := make([]models.Notification, 0, len(recipientPaths))
	for _, path := range recipientPaths {
		recipientID := event.Get(path).String()
		if recipientID == "" || recipientID == actorID || seen[recipientID] {
			continue
		}
		seen[recipientID] = true

		notifications = append(notifications, models.Notification{
			RecipientID: recipientID,
			Event:       name,
			Entity:      entity,
			EntityID:    entityID,
			Message:     notificationMessage(entity, action),
			CreatedAt:   uc.now().UTC(),
		})
	}

	if len(notifications) == 0 {
		uc.Log.Debug("notificationUsecase.HandleEvent no recipients",
			zap.String(constvars.LoggingEventKey, name),
		)
		return nil
	}

	err := uc.NotificationRepository.InsertMany(ctx, notifications)
	if err != nil {
		uc.Log.Error("notificationUsecase.HandleEvent error storing notifications",
			zap.String(constvars.LoggingEventKey, name),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("notificationUsecase.HandleEvent stored notifications",
		zap.String(constvars.LoggingEventKey, name),
		zap.Int(constvars.LoggingResultCountKey, len(notifications)),
	)
	return nil
}

func notificationMessage(entity, action string) string {
	return fmt.Sprintf("Your %s was %s", strings.ReplaceAll(entity, "_", " "), action)
}

func (uc *notificationUsecase) PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := uc.now().Add(-olderThan)
	deleted, err := uc.NotificationRepository.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		uc.Log.Error("notificationUsecase.PurgeRead error deleting notifications",
			zap.Time("cutoff", cutoff),
			zap.Error(err),
		)
		return 0, err
	}

	uc.Log.Info("notificationUsecase.PurgeRead succeeded",
		zap.Time("cutoff", cutoff),
		zap.Int64(constvars.LoggingResultCountKey, deleted),
	)
	return deleted, nil
}
