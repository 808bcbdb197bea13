package controllers

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/queries"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

type ClinicController struct {
	Log            *zap.Logger
	ClinicUsecase    contracts.ClinicUsecase
	InternalConfig *config.InternalConfig
}

func NewClinicController(logger *zap.Logger, clinicUsecase contracts.ClinicUsecase, internalConfig *config.InternalConfig) *ClinicController {
	return &ClinicController{
		Log:            logger,
		ClinicUsecase:    clinicUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *ClinicController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	args, err := utils.BuildFindArgsRequest(r, queries.ClinicTable, queries.ClinicIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.ClinicUsecase.FindAll(ctx, session, args)
	if err != nil {
		writeError(ctrl.Log, w, r, "ClinicController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Count, args.Page, args.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, fmt.Sprintf(constvars.FindAllSuccessFormat, "clinic"), pagination, result.Data)
}

func (ctrl *ClinicController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	id, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	include, err := utils.BuildIncludeRequest(r, queries.ClinicIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.ClinicUsecase.FindByID(ctx, session, id, include)
	if err != nil {
		writeError(ctrl.Log, w, r, "ClinicController.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.FindOneSuccessFormat, "clinic"), result)
}

func (ctrl *ClinicController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateClinic)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("ClinicController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.ClinicUsecase.Create(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "ClinicController.Create", err)
		return
	}

	ctrl.Log.Info("ClinicController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessFormat, "clinic"), result)
}

func (ctrl *ClinicController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicController.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	id, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateClinic)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("ClinicController.Update validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.ClinicUsecase.Update(ctx, session, id, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "ClinicController.Update", err)
		return
	}

	ctrl.Log.Info("ClinicController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessFormat, "clinic"), result)
}

func (ctrl *ClinicController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ClinicController.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	id, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	err = ctrl.ClinicUsecase.Delete(ctx, session, id)
	if err != nil {
		writeError(ctrl.Log, w, r, "ClinicController.Delete", err)
		return
	}

	ctrl.Log.Info("ClinicController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessFormat, "clinic"), nil)
}
