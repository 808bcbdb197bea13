package insurances

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

type insuranceUsecase struct {
	InsuranceRepository contracts.InsuranceRepository
	QueryClients        *querycache.QueryClients
	AccessService       contracts.AccessService
	AuditService        contracts.AuditService
	EventService        contracts.EventService
	Log                 *zap.Logger
}

func NewInsuranceUsecase(
	insuranceRepository contracts.InsuranceRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.InsuranceUsecase {
	return &insuranceUsecase{
		InsuranceRepository: insuranceRepository,
		QueryClients:        queryClients,
		AccessService:       accessService,
		AuditService:        auditService,
		EventService:        eventService,
		Log:                 logger,
	}
}

func (uc *insuranceUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Insurance], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("insuranceUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityInsurance, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.InsuranceRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityInsurance, args)
	scoped.Include = nil

	result, err := uc.QueryClients.Insurances.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("insuranceUsecase.FindAll error finding insurances",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("insuranceUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *insuranceUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Insurance, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("insuranceUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityInsurance, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	insurance, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	insurances := []models.Insurance{*insurance}
	err = uc.attachRelations(ctx, insurances, uc.AccessService.FilterIncludes(session.Roles, include, queries.InsuranceRelations))
	if err != nil {
		return nil, err
	}
	return &insurances[0], nil
}

func (uc *insuranceUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateInsurance) (*models.Insurance, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("insuranceUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityInsurance, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	err = uc.AccessService.CheckOwnership(session, constvars.EntityInsurance, constvars.AccessOperationCreate, map[string]string{
		"patient_id": request.PatientID,
	})
	if err != nil {
		return nil, err
	}

	insurance, err := uc.InsuranceRepository.Create(ctx, &models.Insurance{
		ID:                utils.GenerateID(),
		InsuranceName:     request.InsuranceName,
		PolicyNumber:      request.PolicyNumber,
		CoverageStartDate: request.CoverageStartDate,
		CoverageEndDate:   request.CoverageEndDate,
		PatientID:         request.PatientID,
		ClinicID:          request.ClinicID,
	})
	if err != nil {
		uc.Log.Error("insuranceUsecase.Create error creating insurance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, insurance, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("insuranceUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, insurance.ID),
	)
	return insurance, nil
}

func (uc *insuranceUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateInsurance) (*models.Insurance, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("insuranceUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityInsurance, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	if request.InsuranceName != nil {
		changes.InsuranceName = *request.InsuranceName
	}
	if request.PolicyNumber != nil {
		changes.PolicyNumber = *request.PolicyNumber
	}
	if request.CoverageStartDate != nil {
		changes.CoverageStartDate = *request.CoverageStartDate
	}
	if request.CoverageEndDate != nil {
		changes.CoverageEndDate = *request.CoverageEndDate
	}
	if request.PatientID != nil {
		changes.PatientID = *request.PatientID
	}
	if request.ClinicID != nil {
		changes.ClinicID = *request.ClinicID
	}

	// A partial update can move one coverage bound past the stored other one.
	err = utils.ValidateStruct(&requests.CreateInsurance{
		InsuranceName:     changes.InsuranceName,
		PolicyNumber:      changes.PolicyNumber,
		CoverageStartDate: changes.CoverageStartDate,
		CoverageEndDate:   changes.CoverageEndDate,
		PatientID:         changes.PatientID,
		ClinicID:          changes.ClinicID,
	})
	if err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	err = uc.AccessService.CheckOwnership(session, constvars.EntityInsurance, constvars.AccessOperationUpdate, map[string]string{
		"patient_id": changes.PatientID,
	})
	if err != nil {
		return nil, err
	}

	insurance, err := uc.InsuranceRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("insuranceUsecase.Update error updating insurance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, insurance, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.Insurances.PrimeFirst(ctx, uc.visibleArgs(session, id), insurance)

	uc.Log.Info("insuranceUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, insurance.ID),
	)
	return insurance, nil
}

func (uc *insuranceUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("insuranceUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityInsurance, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.InsuranceRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("insuranceUsecase.Delete error deleting insurance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("insuranceUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func (uc *insuranceUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityInsurance, (&requests.FindArgs{}).WhereID(id))
}

func (uc *insuranceUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.Insurance, error) {
	insurance, err := uc.QueryClients.Insurances.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if insurance == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityInsurance)
	}
	return insurance, nil
}

func (uc *insuranceUsecase) attachRelations(ctx context.Context, insurances []models.Insurance, include []string) error {
	if len(insurances) == 0 || len(include) == 0 {
		return nil
	}
	includes := &requests.FindArgs{Include: include}

	if includes.HasInclude("user") {
		ids := make([]string, 0, len(insurances))
		for _, insurance := range insurances {
			ids = append(ids, insurance.PatientID)
		}
		users, err := querycache.Related(ctx, uc.QueryClients.Users, ids, func(user *models.User) string { return user.ID })
		if err != nil {
			return err
		}
		for i := range insurances {
			insurances[i].User = users[insurances[i].PatientID]
		}
	}

	if includes.HasInclude("clinic") {
		ids := make([]string, 0, len(insurances))
		for _, insurance := range insurances {
			ids = append(ids, insurance.ClinicID)
		}
		clinics, err := querycache.Related(ctx, uc.QueryClients.Clinics, ids, func(clinic *models.Clinic) string { return clinic.ID })
		if err != nil {
			return err
		}
		for i := range insurances {
			insurances[i].Clinic = clinics[insurances[i].ClinicID]
		}
	}
	return nil
}

func (uc *insuranceUsecase) afterWrite(ctx context.Context, session *models.Session, insurance *models.Insurance, auditAction, eventAction string) {
	if err := uc.QueryClients.Insurances.Invalidate(ctx); err != nil {
		uc.Log.Warn("insuranceUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityInsurance, insurance.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityInsurance, eventAction, insurance.ID, map[string]string{
		"insurance_id": insurance.ID,
		"patient_id":   insurance.PatientID,
		"clinic_id":    insurance.ClinicID,
	})
}
