package attachments

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/querycache"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

type attachmentUsecase struct {
	StorageRepository contracts.StorageRepository
	QueryClients      *querycache.QueryClients
	AccessService     contracts.AccessService
	AuditService      contracts.AuditService
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

func NewAttachmentUsecase(
	storageRepository contracts.StorageRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AttachmentUsecase {
	return &attachmentUsecase{
		StorageRepository: storageRepository,
		QueryClients:      queryClients,
		AccessService:     accessService,
		AuditService:      auditService,
		InternalConfig:    internalConfig,
		Log:               logger,
	}
}

func (uc *attachmentUsecase) Upload(ctx context.Context, session *models.Session, request *requests.UploadAttachment) (*models.Attachment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("attachmentUsecase.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, request.MedicalRecordID),
	)

	limit := uc.InternalConfig.Minio.AttachmentMaxUploadSizeInMB * constvars.MB
	if request.Size > limit {
		return nil, exceptions.ErrFileTooLarge(request.Size, limit)
	}

	err := uc.checkRecord(ctx, session, request.MedicalRecordID, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	objectName := utils.GenerateAttachmentObjectName(request.MedicalRecordID, request.FileName)
	err = uc.StorageRepository.UploadFile(ctx, objectName, request.ContentType, request.Content, request.Size)
	if err != nil {
		uc.Log.Error("attachmentUsecase.Upload error uploading object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	url, err := uc.StorageRepository.PresignedGetURL(ctx, objectName, uc.presignExpiry())
	if err != nil {
		return nil, err
	}

	uc.AuditService.Record(ctx, session, constvars.EntityMedicalRecord, request.MedicalRecordID, constvars.AuditActionAttach)

	uc.Log.Info("attachmentUsecase.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return &models.Attachment{
		ObjectName:  objectName,
		FileName:    utils.AttachmentFileName(objectName),
		Size:        request.Size,
		ContentType: request.ContentType,
		URL:         url,
		UploadedAt:  time.Now(),
	}, nil
}

func (uc *attachmentUsecase) FindAll(ctx context.Context, session *models.Session, medicalRecordID string) ([]models.Attachment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("attachmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, medicalRecordID),
	)

	err := uc.checkRecord(ctx, session, medicalRecordID, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	objects, err := uc.StorageRepository.ListObjects(ctx, utils.AttachmentPrefix(medicalRecordID))
	if err != nil {
		uc.Log.Error("attachmentUsecase.FindAll error listing objects",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	attachments := make([]models.Attachment, 0, len(objects))
	for _, object := range objects {
		url, err := uc.StorageRepository.PresignedGetURL(ctx, object.Name, uc.presignExpiry())
		if err != nil {
			return nil, err
		}
		attachments = append(attachments, models.Attachment{
			ObjectName:  object.Name,
			FileName:    utils.AttachmentFileName(object.Name),
			Size:        object.Size,
			ContentType: object.ContentType,
			URL:         url,
			UploadedAt:  object.LastModified,
		})
	}

	uc.Log.Info("attachmentUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(attachments)),
	)
	return attachments, nil
}

func (uc *attachmentUsecase) Delete(ctx context.Context, session *models.Session, medicalRecordID, objectName string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("attachmentUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)

	// Only objects stored under the record's own prefix can be removed through it.
	if !strings.HasPrefix(objectName, utils.AttachmentPrefix(medicalRecordID)+"/") {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityAttachment)
	}

	err := uc.checkRecord(ctx, session, medicalRecordID, constvars.AccessOperationUpdate)
	if err != nil {
		return err
	}

	err = uc.StorageRepository.RemoveObject(ctx, objectName)
	if err != nil {
		uc.Log.Error("attachmentUsecase.Delete error removing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.AuditService.Record(ctx, session, constvars.EntityMedicalRecord, medicalRecordID, constvars.AuditActionDetach)

	uc.Log.Info("attachmentUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return nil
}

// checkRecord authorizes operation on medical records and makes sure the
// record exists and is visible to the session.
func (uc *attachmentUsecase) checkRecord(ctx context.Context, session *models.Session, medicalRecordID, operation string) error {
	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, operation)
	if err != nil {
		return err
	}

	args := uc.AccessService.ScopeOwnership(session, constvars.EntityMedicalRecord, (&requests.FindArgs{}).WhereID(medicalRecordID))
	record, err := uc.QueryClients.MedicalRecords.FindFirst(ctx, args, nil)
	if err != nil {
		return err
	}
	if record == nil {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityMedicalRecord)
	}
	return nil
}

func (uc *attachmentUsecase) presignExpiry() time.Duration {
	return time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryInMinutes) * time.Minute
}
