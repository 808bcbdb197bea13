package contracts

import (
	"clinic-admin-service/internal/app/models"
	"context"
	"time"
)

type SessionService interface {
	Create(ctx context.Context, session *models.Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}
