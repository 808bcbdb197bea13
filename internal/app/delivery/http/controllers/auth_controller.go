package controllers

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	InternalConfig *config.InternalConfig
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, internalConfig *config.InternalConfig) *AuthController {
	return &AuthController{
		Log:            logger,
		AuthUsecase:    authUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.LoginUser)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	// Sanitize request
	utils.SanitizeLoginRequest(request)

	// Validate request
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	// Send it to be processed by usecase
	response, err := ctrl.AuthUsecase.Login(ctx, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "AuthController.Login", err)
		return
	}

	// Send response
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccess, response)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	err = ctrl.AuthUsecase.Logout(ctx, session)
	if err != nil {
		writeError(ctrl.Log, w, r, "AuthController.Logout", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccess, nil)
}

func (ctrl *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	profile, err := ctrl.AuthUsecase.Profile(ctx, session)
	if err != nil {
		writeError(ctrl.Log, w, r, "AuthController.Me", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ProfileGetSuccess, profile)
}
