package medicalrecords

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/querycache"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/queries"
	"clinic-admin-service/internal/pkg/utils"
	"context"

	"go.uber.org/zap"
)

type medicalRecordUsecase struct {
	MedicalRecordRepository contracts.MedicalRecordRepository
	QueryClients            *querycache.QueryClients
	AccessService           contracts.AccessService
	AuditService            contracts.AuditService
	EventService            contracts.EventService
	Log                     *zap.Logger
}

func NewMedicalRecordUsecase(
	medicalRecordRepository contracts.MedicalRecordRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.MedicalRecordUsecase {
	return &medicalRecordUsecase{
		MedicalRecordRepository: medicalRecordRepository,
		QueryClients:            queryClients,
		AccessService:           accessService,
		AuditService:            auditService,
		EventService:            eventService,
		Log:                     logger,
	}
}

func (uc *medicalRecordUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.MedicalRecord], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.MedicalRecordRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityMedicalRecord, args)
	scoped.Include = nil

	result, err := uc.QueryClients.MedicalRecords.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.FindAll error finding medical records",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("medicalRecordUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *medicalRecordUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	record, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	records := []models.MedicalRecord{*record}
	err = uc.attachRelations(ctx, records, uc.AccessService.FilterIncludes(session.Roles, include, queries.MedicalRecordRelations))
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

func (uc *medicalRecordUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	entity := &models.MedicalRecord{
		ID:            utils.GenerateID(),
		Diagnosis:     request.Diagnosis,
		TreatmentPlan: request.TreatmentPlan,
		Prescription:  request.Prescription,
		Notes:         request.Notes,
		PatientID:     request.PatientID,
		DoctorID:      request.DoctorID,
	}
	err = uc.AccessService.CheckOwnership(session, constvars.EntityMedicalRecord, constvars.AccessOperationCreate, ownershipValues(entity))
	if err != nil {
		return nil, err
	}

	record, err := uc.MedicalRecordRepository.Create(ctx, entity)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.Create error creating medical record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, record, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("medicalRecordUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, record.ID),
	)
	return record, nil
}

func (uc *medicalRecordUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	if request.Diagnosis != nil {
		changes.Diagnosis = *request.Diagnosis
	}
	if request.TreatmentPlan != nil {
		changes.TreatmentPlan = *request.TreatmentPlan
	}
	if request.Prescription != nil {
		changes.Prescription = request.Prescription
	}
	if request.Notes != nil {
		changes.Notes = request.Notes
	}
	if request.PatientID != nil {
		changes.PatientID = *request.PatientID
	}
	if request.DoctorID != nil {
		changes.DoctorID = *request.DoctorID
	}

	err = uc.AccessService.CheckOwnership(session, constvars.EntityMedicalRecord, constvars.AccessOperationUpdate, ownershipValues(&changes))
	if err != nil {
		return nil, err
	}

	record, err := uc.MedicalRecordRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.Update error updating medical record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, record, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.MedicalRecords.PrimeFirst(ctx, uc.visibleArgs(session, id), record)

	uc.Log.Info("medicalRecordUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, record.ID),
	)
	return record, nil
}

func (uc *medicalRecordUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("medicalRecordUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityMedicalRecord, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.MedicalRecordRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("medicalRecordUsecase.Delete error deleting medical record",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("medicalRecordUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func ownershipValues(record *models.MedicalRecord) map[string]string {
	return map[string]string{
		"patient_id": record.PatientID,
		"doctor_id":  record.DoctorID,
	}
}

func (uc *medicalRecordUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityMedicalRecord, (&requests.FindArgs{}).WhereID(id))
}

func (uc *medicalRecordUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.MedicalRecord, error) {
	record, err := uc.QueryClients.MedicalRecords.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityMedicalRecord)
	}
	return record, nil
}

func (uc *medicalRecordUsecase) attachRelations(ctx context.Context, records []models.MedicalRecord, include []string) error {
	includes := &requests.FindArgs{Include: include}
	if len(records) == 0 || !(includes.HasInclude("patient") || includes.HasInclude("doctor")) {
		return nil
	}

	ids := make([]string, 0, len(records)*2)
	for _, record := range records {
		ids = append(ids, record.PatientID, record.DoctorID)
	}
	users, err := querycache.Related(ctx, uc.QueryClients.Users, ids, func(user *models.User) string { return user.ID })
	if err != nil {
		return err
	}

	for i := range records {
		if includes.HasInclude("patient") {
			records[i].Patient = users[records[i].PatientID]
		}
		if includes.HasInclude("doctor") {
			records[i].Doctor = users[records[i].DoctorID]
		}
	}
	return nil
}

func (uc *medicalRecordUsecase) afterWrite(ctx context.Context, session *models.Session, record *models.MedicalRecord, auditAction, eventAction string) {
	if err := uc.QueryClients.MedicalRecords.Invalidate(ctx); err != nil {
		uc.Log.Warn("medicalRecordUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityMedicalRecord, record.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityMedicalRecord, eventAction, record.ID, map[string]string{
		"medical_record_id": record.ID,
		"patient_id":        record.PatientID,
		"doctor_id":         record.DoctorID,
	})
}
