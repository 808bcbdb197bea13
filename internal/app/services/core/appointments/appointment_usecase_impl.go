package appointments

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

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	QueryClients          *querycache.QueryClients
	AccessService         contracts.AccessService
	AuditService          contracts.AuditService
	EventService          contracts.EventService
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		QueryClients:          queryClients,
		AccessService:         accessService,
		AuditService:          auditService,
		EventService:          eventService,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Appointment], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityAppointment, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.AppointmentRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityAppointment, args)
	scoped.Include = nil

	result, err := uc.QueryClients.Appointments.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAll error finding appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityAppointment, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	appointments := []models.Appointment{*appointment}
	err = uc.attachRelations(ctx, appointments, uc.AccessService.FilterIncludes(session.Roles, include, queries.AppointmentRelations))
	if err != nil {
		return nil, err
	}
	return &appointments[0], nil
}

func (uc *appointmentUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityAppointment, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	entity := &models.Appointment{
		ID:              utils.GenerateID(),
		AppointmentDate: request.AppointmentDate,
		Status:          request.Status,
		PatientID:       request.PatientID,
		DoctorID:        request.DoctorID,
		ClinicID:        request.ClinicID,
	}
	err = uc.AccessService.CheckOwnership(session, constvars.EntityAppointment, constvars.AccessOperationCreate, ownershipValues(entity))
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.Create(ctx, entity)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Create error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, appointment, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("appointmentUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateAppointment) (*models.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityAppointment, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	if request.AppointmentDate != nil {
		changes.AppointmentDate = *request.AppointmentDate
	}
	if request.Status != nil {
		changes.Status = *request.Status
	}
	if request.PatientID != nil {
		changes.PatientID = *request.PatientID
	}
	if request.DoctorID != nil {
		changes.DoctorID = *request.DoctorID
	}
	if request.ClinicID != nil {
		changes.ClinicID = *request.ClinicID
	}

	// Scoped roles cannot hand the appointment over to someone else.
	err = uc.AccessService.CheckOwnership(session, constvars.EntityAppointment, constvars.AccessOperationUpdate, ownershipValues(&changes))
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Update error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, appointment, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.Appointments.PrimeFirst(ctx, uc.visibleArgs(session, id), appointment)

	uc.Log.Info("appointmentUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, appointment.ID),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityAppointment, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.AppointmentRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Delete error deleting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("appointmentUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func ownershipValues(appointment *models.Appointment) map[string]string {
	return map[string]string{
		"patient_id": appointment.PatientID,
		"doctor_id":  appointment.DoctorID,
	}
}

func (uc *appointmentUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityAppointment, (&requests.FindArgs{}).WhereID(id))
}

func (uc *appointmentUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.Appointment, error) {
	appointment, err := uc.QueryClients.Appointments.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityAppointment)
	}
	return appointment, nil
}

func (uc *appointmentUsecase) attachRelations(ctx context.Context, appointments []models.Appointment, include []string) error {
	if len(appointments) == 0 || len(include) == 0 {
		return nil
	}
	includes := &requests.FindArgs{Include: include}

	if includes.HasInclude("patient") || includes.HasInclude("doctor") {
		ids := make([]string, 0, len(appointments)*2)
		for _, appointment := range appointments {
			ids = append(ids, appointment.PatientID, appointment.DoctorID)
		}
		users, err := querycache.Related(ctx, uc.QueryClients.Users, ids, func(user *models.User) string { return user.ID })
		if err != nil {
			return err
		}
		for i := range appointments {
			if includes.HasInclude("patient") {
				appointments[i].Patient = users[appointments[i].PatientID]
			}
			if includes.HasInclude("doctor") {
				appointments[i].Doctor = users[appointments[i].DoctorID]
			}
		}
	}

	if includes.HasInclude("clinic") {
		ids := make([]string, 0, len(appointments))
		for _, appointment := range appointments {
			ids = append(ids, appointment.ClinicID)
		}
		clinics, err := querycache.Related(ctx, uc.QueryClients.Clinics, ids, func(clinic *models.Clinic) string { return clinic.ID })
		if err != nil {
			return err
		}
		for i := range appointments {
			appointments[i].Clinic = clinics[appointments[i].ClinicID]
		}
	}
	return nil
}

func (uc *appointmentUsecase) afterWrite(ctx context.Context, session *models.Session, appointment *models.Appointment, auditAction, eventAction string) {
	if err := uc.QueryClients.Appointments.Invalidate(ctx); err != nil {
		uc.Log.Warn("appointmentUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityAppointment, appointment.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityAppointment, eventAction, appointment.ID, map[string]interface{}{
		"appointment_id":   appointment.ID,
		"patient_id":       appointment.PatientID,
		"doctor_id":        appointment.DoctorID,
		"clinic_id":        appointment.ClinicID,
		"status":           appointment.Status,
		"appointment_date": appointment.AppointmentDate,
	})
}
