package middlewares

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	AccessService  contracts.AccessService
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(
	logger *zap.Logger,
	authUsecase contracts.AuthUsecase,
	accessService contracts.AccessService,
	internalConfig *config.InternalConfig,
) *Middlewares {
	return &Middlewares{
		Log:            logger,
		AuthUsecase:    authUsecase,
		AccessService:  accessService,
		InternalConfig: internalConfig,
	}
}
