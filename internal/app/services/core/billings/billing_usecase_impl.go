package billings

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

type billingUsecase struct {
	BillingRepository contracts.BillingRepository
	QueryClients      *querycache.QueryClients
	AccessService     contracts.AccessService
	AuditService      contracts.AuditService
	EventService      contracts.EventService
	Log               *zap.Logger
}

func NewBillingUsecase(
	billingRepository contracts.BillingRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.BillingUsecase {
	return &billingUsecase{
		BillingRepository: billingRepository,
		QueryClients:      queryClients,
		AccessService:     accessService,
		AuditService:      auditService,
		EventService:      eventService,
		Log:               logger,
	}
}

func (uc *billingUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Billing], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("billingUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityBilling, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.BillingRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityBilling, args)
	scoped.Include = nil

	result, err := uc.QueryClients.Billings.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("billingUsecase.FindAll error finding billings",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("billingUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *billingUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Billing, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("billingUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityBilling, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	billing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	billings := []models.Billing{*billing}
	err = uc.attachRelations(ctx, billings, uc.AccessService.FilterIncludes(session.Roles, include, queries.BillingRelations))
	if err != nil {
		return nil, err
	}
	return &billings[0], nil
}

func (uc *billingUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateBilling) (*models.Billing, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("billingUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityBilling, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	err = uc.AccessService.CheckOwnership(session, constvars.EntityBilling, constvars.AccessOperationCreate, map[string]string{
		"patient_id": request.PatientID,
	})
	if err != nil {
		return nil, err
	}

	billing, err := uc.BillingRepository.Create(ctx, &models.Billing{
		ID:            utils.GenerateID(),
		AmountDue:     *request.AmountDue,
		PaymentStatus: request.PaymentStatus,
		BillingDate:   request.BillingDate,
		PatientID:     request.PatientID,
		ClinicID:      request.ClinicID,
		InsuranceID:   request.InsuranceID,
		AppointmentID: request.AppointmentID,
	})
	if err != nil {
		uc.Log.Error("billingUsecase.Create error creating billing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, billing, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("billingUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, billing.ID),
	)
	return billing, nil
}

func (uc *billingUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateBilling) (*models.Billing, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("billingUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityBilling, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	if request.AmountDue != nil {
		changes.AmountDue = *request.AmountDue
	}
	if request.PaymentStatus != nil {
		changes.PaymentStatus = *request.PaymentStatus
	}
	if request.BillingDate != nil {
		changes.BillingDate = *request.BillingDate
	}
	if request.PatientID != nil {
		changes.PatientID = *request.PatientID
	}
	if request.ClinicID != nil {
		changes.ClinicID = *request.ClinicID
	}
	if request.InsuranceID != nil {
		changes.InsuranceID = *request.InsuranceID
	}
	if request.AppointmentID != nil {
		changes.AppointmentID = *request.AppointmentID
	}

	err = uc.AccessService.CheckOwnership(session, constvars.EntityBilling, constvars.AccessOperationUpdate, map[string]string{
		"patient_id": changes.PatientID,
	})
	if err != nil {
		return nil, err
	}

	billing, err := uc.BillingRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("billingUsecase.Update error updating billing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, billing, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.Billings.PrimeFirst(ctx, uc.visibleArgs(session, id), billing)

	uc.Log.Info("billingUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, billing.ID),
	)
	return billing, nil
}

func (uc *billingUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("billingUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityBilling, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.BillingRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("billingUsecase.Delete error deleting billing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("billingUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func (uc *billingUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityBilling, (&requests.FindArgs{}).WhereID(id))
}

func (uc *billingUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.Billing, error) {
	billing, err := uc.QueryClients.Billings.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if billing == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityBilling)
	}
	return billing, nil
}

func (uc *billingUsecase) attachRelations(ctx context.Context, billings []models.Billing, include []string) error {
	if len(billings) == 0 || len(include) == 0 {
		return nil
	}
	includes := &requests.FindArgs{Include: include}

	if includes.HasInclude("user") {
		ids := make([]string, 0, len(billings))
		for _, billing := range billings {
			ids = append(ids, billing.PatientID)
		}
		users, err := querycache.Related(ctx, uc.QueryClients.Users, ids, func(user *models.User) string { return user.ID })
		if err != nil {
			return err
		}
		for i := range billings {
			billings[i].User = users[billings[i].PatientID]
		}
	}

	if includes.HasInclude("clinic") {
		ids := make([]string, 0, len(billings))
		for _, billing := range billings {
			ids = append(ids, billing.ClinicID)
		}
		clinics, err := querycache.Related(ctx, uc.QueryClients.Clinics, ids, func(clinic *models.Clinic) string { return clinic.ID })
		if err != nil {
			return err
		}
		for i := range billings {
			billings[i].Clinic = clinics[billings[i].ClinicID]
		}
	}

	if includes.HasInclude("insurance") {
		ids := make([]string, 0, len(billings))
		for _, billing := range billings {
			ids = append(ids, billing.InsuranceID)
		}
		insurances, err := querycache.Related(ctx, uc.QueryClients.Insurances, ids, func(insurance *models.Insurance) string { return insurance.ID })
		if err != nil {
			return err
		}
		for i := range billings {
			billings[i].Insurance = insurances[billings[i].InsuranceID]
		}
	}

	if includes.HasInclude("appointment") {
		ids := make([]string, 0, len(billings))
		for _, billing := range billings {
			ids = append(ids, billing.AppointmentID)
		}
		appointments, err := querycache.Related(ctx, uc.QueryClients.Appointments, ids, func(appointment *models.Appointment) string { return appointment.ID })
		if err != nil {
			return err
		}
		for i := range billings {
			billings[i].Appointment = appointments[billings[i].AppointmentID]
		}
	}
	return nil
}

func (uc *billingUsecase) afterWrite(ctx context.Context, session *models.Session, billing *models.Billing, auditAction, eventAction string) {
	if err := uc.QueryClients.Billings.Invalidate(ctx); err != nil {
		uc.Log.Warn("billingUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityBilling, billing.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityBilling, eventAction, billing.ID, map[string]interface{}{
		"billing_id":     billing.ID,
		"patient_id":     billing.PatientID,
		"clinic_id":      billing.ClinicID,
		"amount_due":     billing.AmountDue,
		"payment_status": billing.PaymentStatus,
	})
}
