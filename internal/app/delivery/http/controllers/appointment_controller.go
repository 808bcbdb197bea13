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

type AppointmentController struct {
	Log            *zap.Logger
	AppointmentUsecase    contracts.AppointmentUsecase
	InternalConfig *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:            logger,
		AppointmentUsecase:    appointmentUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AppointmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	args, err := utils.BuildFindArgsRequest(r, queries.AppointmentTable, queries.AppointmentIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AppointmentUsecase.FindAll(ctx, session, args)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppointmentController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Count, args.Page, args.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, fmt.Sprintf(constvars.FindAllSuccessFormat, "appointment"), pagination, result.Data)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.FindByID called",
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

	include, err := utils.BuildIncludeRequest(r, queries.AppointmentIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AppointmentUsecase.FindByID(ctx, session, id, include)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppointmentController.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.FindOneSuccessFormat, "appointment"), result)
}

func (ctrl *AppointmentController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateAppointment)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("AppointmentController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AppointmentUsecase.Create(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppointmentController.Create", err)
		return
	}

	ctrl.Log.Info("AppointmentController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessFormat, "appointment"), result)
}

func (ctrl *AppointmentController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.Update called",
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

	request := new(requests.UpdateAppointment)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("AppointmentController.Update validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AppointmentUsecase.Update(ctx, session, id, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppointmentController.Update", err)
		return
	}

	ctrl.Log.Info("AppointmentController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessFormat, "appointment"), result)
}

func (ctrl *AppointmentController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AppointmentController.Delete called",
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

	err = ctrl.AppointmentUsecase.Delete(ctx, session, id)
	if err != nil {
		writeError(ctrl.Log, w, r, "AppointmentController.Delete", err)
		return
	}

	ctrl.Log.Info("AppointmentController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessFormat, "appointment"), nil)
}
