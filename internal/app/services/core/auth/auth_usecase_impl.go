package auth

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/app/services/shared/ratelimiter"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

const loginFailureGroup = "login-failure"

// FailureLimiter throttles repeated failed logins per account.
type FailureLimiter interface {
	Hit(ctx context.Context, in *ratelimiter.HitInput) (*ratelimiter.HitOutput, error)
	Exceeded(ctx context.Context, in *ratelimiter.HitInput) (bool, int, error)
	Reset(ctx context.Context, in *ratelimiter.HitInput) error
}

type authUsecase struct {
	UserRepository contracts.UserRepository
	SessionService contracts.SessionService
	AccessService  contracts.AccessService
	FailureLimiter FailureLimiter
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	now            func() time.Time
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	sessionService contracts.SessionService,
	accessService contracts.AccessService,
	failureLimiter FailureLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository: userRepository,
		SessionService: sessionService,
		AccessService:  accessService,
		FailureLimiter: failureLimiter,
		InternalConfig: internalConfig,
		Log:            logger,
		now:            time.Now,
	}
}

func (uc *authUsecase) failureInput(email string) *ratelimiter.HitInput {
	return &ratelimiter.HitInput{
		Group:             loginFailureGroup,
		Subject:           email,
		WindowDurationSec: uc.InternalConfig.App.LoginFailureWindowInSecond,
		MaxQuota:          uc.InternalConfig.App.LoginMaxFailedAttempts,
	}
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.LoginUser) (*responses.LoginUser, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	failureInput := uc.failureInput(request.Email)
	blocked, retryAfter, err := uc.FailureLimiter.Exceeded(ctx, failureInput)
	if err != nil {
		uc.Log.Warn("authUsecase.Login error reading failure counter, continuing",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	if blocked {
		uc.Log.Info("authUsecase.Login blocked after repeated failures",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("retry_after", retryAfter),
		)
		return nil, exceptions.ErrTooManyRequests(nil)
	}

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		uc.Log.Error("authUsecase.Login error finding user by email",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if user == nil || !utils.CheckPasswordHash(request.Password, user.PasswordHash) {
		if _, err := uc.FailureLimiter.Hit(ctx, failureInput); err != nil {
			uc.Log.Warn("authUsecase.Login error recording failed attempt",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	if err := uc.FailureLimiter.Reset(ctx, failureInput); err != nil {
		uc.Log.Warn("authUsecase.Login error resetting failure counter",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	ttl := time.Duration(uc.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	issuedAt := uc.now()
	expiresAt := issuedAt.Add(ttl)
	session := &models.Session{
		SessionID: utils.GenerateID(),
		UserID:    user.ID,
		Email:     user.Email,
		Roles:     []string{user.Role},
		TenantID:  user.TenantID,
		ExpiresAt: expiresAt,
	}

	err = uc.SessionService.Create(ctx, session, ttl)
	if err != nil {
		uc.Log.Error("authUsecase.Login error storing session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, issuedAt, expiresAt)
	if err != nil {
		uc.Log.Error("authUsecase.Login error generating token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return &responses.LoginUser{Token: token, ExpiresAt: expiresAt}, nil
}

func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := uc.SessionService.Delete(ctx, session.SessionID)
	if err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session from Redis",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)
	return nil
}

func (uc *authUsecase) Profile(ctx context.Context, session *models.Session) (*responses.Profile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Profile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindFirst(ctx, (&requests.FindArgs{}).WhereID(session.UserID))
	if err != nil {
		uc.Log.Error("authUsecase.Profile error finding user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrInvalidSession(nil)
	}

	abilities, err := uc.AccessService.Abilities(session.Roles)
	if err != nil {
		return nil, err
	}

	return &responses.Profile{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.DisplayName(),
		Roles:     session.Roles,
		TenantID:  user.TenantID,
		Abilities: abilities,
	}, nil
}

// ResolveSession turns a bearer token into the live session it names.
func (uc *authUsecase) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	sessionID, err := utils.ParseSessionJWTAt(token, uc.InternalConfig.JWT.Secret, uc.now())
	if err != nil {
		return nil, err
	}

	session, err := uc.SessionService.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	return session, nil
}
