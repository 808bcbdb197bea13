package clinics

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

type clinicUsecase struct {
	ClinicRepository contracts.ClinicRepository
	QueryClients     *querycache.QueryClients
	AccessService    contracts.AccessService
	AuditService     contracts.AuditService
	EventService     contracts.EventService
	Log              *zap.Logger
}

func NewClinicUsecase(
	clinicRepository contracts.ClinicRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.ClinicUsecase {
	return &clinicUsecase{
		ClinicRepository: clinicRepository,
		QueryClients:     queryClients,
		AccessService:    accessService,
		AuditService:     auditService,
		EventService:     eventService,
		Log:              logger,
	}
}

func (uc *clinicUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Clinic], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("clinicUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityClinic, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.ClinicRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityClinic, args)
	scoped.Include = nil

	result, err := uc.QueryClients.Clinics.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("clinicUsecase.FindAll error finding clinics",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("clinicUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *clinicUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Clinic, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("clinicUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityClinic, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	clinic, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	clinics := []models.Clinic{*clinic}
	err = uc.attachRelations(ctx, clinics, uc.AccessService.FilterIncludes(session.Roles, include, queries.ClinicRelations))
	if err != nil {
		return nil, err
	}
	return &clinics[0], nil
}

func (uc *clinicUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateClinic) (*models.Clinic, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("clinicUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityClinic, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	clinic, err := uc.ClinicRepository.Create(ctx, &models.Clinic{
		ID:          utils.GenerateID(),
		Name:        request.Name,
		Description: request.Description,
		Image:       request.Image,
		UserID:      request.UserID,
		TenantID:    session.TenantID,
	})
	if err != nil {
		uc.Log.Error("clinicUsecase.Create error creating clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, clinic, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("clinicUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, clinic.ID),
	)
	return clinic, nil
}

func (uc *clinicUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateClinic) (*models.Clinic, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("clinicUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityClinic, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	if request.Name != nil {
		changes.Name = *request.Name
	}
	if request.Description != nil {
		changes.Description = request.Description
	}
	if request.Image != nil {
		changes.Image = request.Image
	}
	if request.UserID != nil {
		changes.UserID = *request.UserID
	}

	clinic, err := uc.ClinicRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("clinicUsecase.Update error updating clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, clinic, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.Clinics.PrimeFirst(ctx, uc.visibleArgs(session, id), clinic)

	uc.Log.Info("clinicUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, clinic.ID),
	)
	return clinic, nil
}

func (uc *clinicUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("clinicUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityClinic, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.ClinicRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("clinicUsecase.Delete error deleting clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("clinicUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func (uc *clinicUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityClinic, (&requests.FindArgs{}).WhereID(id))
}

func (uc *clinicUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.Clinic, error) {
	clinic, err := uc.QueryClients.Clinics.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if clinic == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityClinic)
	}
	return clinic, nil
}

func (uc *clinicUsecase) attachRelations(ctx context.Context, clinics []models.Clinic, include []string) error {
	if len(clinics) == 0 || len(include) == 0 {
		return nil
	}
	includes := &requests.FindArgs{Include: include}

	if includes.HasInclude("user") {
		ids := make([]string, 0, len(clinics))
		for _, clinic := range clinics {
			ids = append(ids, clinic.UserID)
		}
		users, err := querycache.Related(ctx, uc.QueryClients.Users, ids, func(user *models.User) string { return user.ID })
		if err != nil {
			return err
		}
		for i := range clinics {
			clinics[i].User = users[clinics[i].UserID]
		}
	}

	if includes.HasInclude(constvars.IncludeCount) {
		ids := make([]string, 0, len(clinics))
		for _, clinic := range clinics {
			ids = append(ids, clinic.ID)
		}
		counts, err := uc.ClinicRepository.CountRelations(ctx, ids)
		if err != nil {
			return err
		}
		for i := range clinics {
			clinics[i].Count = counts[clinics[i].ID]
		}
	}
	return nil
}

func (uc *clinicUsecase) afterWrite(ctx context.Context, session *models.Session, clinic *models.Clinic, auditAction, eventAction string) {
	if err := uc.QueryClients.Clinics.Invalidate(ctx); err != nil {
		uc.Log.Warn("clinicUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityClinic, clinic.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityClinic, eventAction, clinic.ID, map[string]string{
		"clinic_id": clinic.ID,
		"user_id":   clinic.UserID,
	})
}
