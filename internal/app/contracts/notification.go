package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"context"
	"time"
)

type NotificationRepository interface {
	InsertMany(ctx context.Context, notifications []models.Notification) error
	FindByRecipient(ctx context.Context, request *requests.FindNotifications) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, recipientID, notificationID string) (bool, error)
	DeleteReadBefore(ctx context.Context, before time.Time) (int64, error)
}

type NotificationUsecase interface {
	FindAll(ctx context.Context, session *models.Session, request *requests.FindNotifications) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, session *models.Session, notificationID string) error
	HandleEvent(ctx context.Context, body []byte) error
	PurgeRead(ctx context.Context, olderThan time.Duration) (int64, error)
}
