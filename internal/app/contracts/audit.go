package contracts

import (
	"clinic-admin-service/internal/app/models"
	"context"
)

type AuditRepository interface {
	Insert(ctx context.Context, entry *models.AuditLog) error
}

type AuditService interface {
	Record(ctx context.Context, session *models.Session, entity, entityID, action string)
}
