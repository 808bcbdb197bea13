package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"context"
)

type AttachmentUsecase interface {
	Upload(ctx context.Context, session *models.Session, request *requests.UploadAttachment) (*models.Attachment, error)
	FindAll(ctx context.Context, session *models.Session, medicalRecordID string) ([]models.Attachment, error)
	Delete(ctx context.Context, session *models.Session, medicalRecordID, objectName string) error
}
