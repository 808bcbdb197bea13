package users

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

type userUsecase struct {
	UserRepository contracts.UserRepository
	QueryClients   *querycache.QueryClients
	AccessService  contracts.AccessService
	AuditService   contracts.AuditService
	EventService   contracts.EventService
	Log            *zap.Logger
}

func NewUserUsecase(
	userRepository contracts.UserRepository,
	queryClients *querycache.QueryClients,
	accessService contracts.AccessService,
	auditService contracts.AuditService,
	eventService contracts.EventService,
	logger *zap.Logger,
) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		QueryClients:   queryClients,
		AccessService:  accessService,
		AuditService:   auditService,
		EventService:   eventService,
		Log:            logger,
	}
}

func (uc *userUsecase) FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.User], error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityUser, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	include := uc.AccessService.FilterIncludes(session.Roles, args.Include, queries.UserRelations)
	scoped := uc.AccessService.ScopeOwnership(session, constvars.EntityUser, args)
	scoped.Include = nil

	result, err := uc.QueryClients.Users.FindManyWithCount(ctx, scoped, nil)
	if err != nil {
		uc.Log.Error("userUsecase.FindAll error finding users",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.attachRelations(ctx, result.Data, include)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("userUsecase.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResultCountKey, len(result.Data)),
		zap.Int(constvars.LoggingTotalKey, result.Count),
	)
	return result, nil
}

func (uc *userUsecase) FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityUser, constvars.AccessOperationRead)
	if err != nil {
		return nil, err
	}

	user, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	users := []models.User{*user}
	err = uc.attachRelations(ctx, users, uc.AccessService.FilterIncludes(session.Roles, include, queries.UserRelations))
	if err != nil {
		return nil, err
	}
	return &users[0], nil
}

func (uc *userUsecase) Create(ctx context.Context, session *models.Session, request *requests.CreateUser) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityUser, constvars.AccessOperationCreate)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		uc.Log.Error("userUsecase.Create error hashing password",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrHashPassword(err)
	}

	user, err := uc.UserRepository.Create(ctx, &models.User{
		ID:           utils.GenerateID(),
		Email:        request.Email,
		FirstName:    request.FirstName,
		LastName:     request.LastName,
		Role:         request.Role,
		ExternalID:   request.ExternalID,
		TenantID:     session.TenantID,
		PasswordHash: hashedPassword,
	})
	if err != nil {
		uc.Log.Error("userUsecase.Create error creating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, user, constvars.AuditActionCreate, constvars.EventActionCreated)

	uc.Log.Info("userUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, user.ID),
	)
	return user, nil
}

func (uc *userUsecase) Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateUser) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityUser, constvars.AccessOperationUpdate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return nil, err
	}

	changes := *existing
	changes.PasswordHash = ""
	if request.Email != nil {
		changes.Email = *request.Email
	}
	if request.FirstName != nil {
		changes.FirstName = request.FirstName
	}
	if request.LastName != nil {
		changes.LastName = request.LastName
	}
	if request.Role != nil {
		changes.Role = *request.Role
	}
	if request.ExternalID != nil {
		changes.ExternalID = request.ExternalID
	}
	if request.Password != nil {
		hashedPassword, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, exceptions.ErrHashPassword(err)
		}
		changes.PasswordHash = hashedPassword
	}

	user, err := uc.UserRepository.Update(ctx, &changes)
	if err != nil {
		uc.Log.Error("userUsecase.Update error updating user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.afterWrite(ctx, session, user, constvars.AuditActionUpdate, constvars.EventActionUpdated)
	uc.QueryClients.Users.PrimeFirst(ctx, uc.visibleArgs(session, id), user)

	uc.Log.Info("userUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, user.ID),
	)
	return user, nil
}

func (uc *userUsecase) Delete(ctx context.Context, session *models.Session, id string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)

	err := uc.AccessService.Authorize(session, constvars.EntityUser, constvars.AccessOperationDelete)
	if err != nil {
		return err
	}

	existing, err := uc.findVisible(ctx, session, id)
	if err != nil {
		return err
	}

	err = uc.UserRepository.Delete(ctx, existing.ID)
	if err != nil {
		uc.Log.Error("userUsecase.Delete error deleting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.afterWrite(ctx, session, existing, constvars.AuditActionDelete, constvars.EventActionDeleted)

	uc.Log.Info("userUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	return nil
}

func (uc *userUsecase) visibleArgs(session *models.Session, id string) *requests.FindArgs {
	return uc.AccessService.ScopeOwnership(session, constvars.EntityUser, (&requests.FindArgs{}).WhereID(id))
}

// findVisible returns the user when it exists and the session may see it.
func (uc *userUsecase) findVisible(ctx context.Context, session *models.Session, id string) (*models.User, error) {
	user, err := uc.QueryClients.Users.FindFirst(ctx, uc.visibleArgs(session, id), nil)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrResourceNotExist(nil, constvars.EntityUser)
	}
	return user, nil
}

func (uc *userUsecase) attachRelations(ctx context.Context, users []models.User, include []string) error {
	if len(users) == 0 || !(&requests.FindArgs{Include: include}).HasInclude(constvars.IncludeCount) {
		return nil
	}

	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}

	counts, err := uc.UserRepository.CountRelations(ctx, ids)
	if err != nil {
		return err
	}
	for i := range users {
		users[i].Count = counts[users[i].ID]
	}
	return nil
}

func (uc *userUsecase) afterWrite(ctx context.Context, session *models.Session, user *models.User, auditAction, eventAction string) {
	if err := uc.QueryClients.Users.Invalidate(ctx); err != nil {
		uc.Log.Warn("userUsecase.afterWrite cache invalidation failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	uc.AuditService.Record(ctx, session, constvars.EntityUser, user.ID, auditAction)
	uc.EventService.Emit(ctx, session, constvars.EntityUser, eventAction, user.ID, map[string]string{
		"user_id": user.ID,
		"role":    user.Role,
	})
}
