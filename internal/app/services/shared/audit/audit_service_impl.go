package audit

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type auditService struct {
	Repository contracts.AuditRepository
	Log        *zap.Logger
	now        func() time.Time
}

func NewAuditService(repository contracts.AuditRepository, logger *zap.Logger) contracts.AuditService {
	return &auditService{
		Repository: repository,
		Log:        logger,
		now:        time.Now,
	}
}

// Record stores who changed what. An audit failure is logged only.
func (s *auditService) Record(ctx context.Context, session *models.Session, entity, entityID, action string) {
	requestID := utils.GetRequestID(ctx)

	entry := &models.AuditLog{
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		RequestID: requestID,
		At:        s.now().UTC(),
	}
	if session != nil {
		entry.ActorID = session.UserID
		entry.TenantID = session.TenantID
	}

	if err := s.Repository.Insert(ctx, entry); err != nil {
		s.Log.Error("auditService.Record error inserting audit log",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityKey, entity),
			zap.String(constvars.LoggingEntityIDKey, entityID),
			zap.Error(err),
		)
	}
}
