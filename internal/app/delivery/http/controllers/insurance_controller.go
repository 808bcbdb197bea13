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

type InsuranceController struct {
	Log            *zap.Logger
	InsuranceUsecase    contracts.InsuranceUsecase
	InternalConfig *config.InternalConfig
}

func NewInsuranceController(logger *zap.Logger, insuranceUsecase contracts.InsuranceUsecase, internalConfig *config.InternalConfig) *InsuranceController {
	return &InsuranceController{
		Log:            logger,
		InsuranceUsecase:    insuranceUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *InsuranceController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("InsuranceController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	args, err := utils.BuildFindArgsRequest(r, queries.InsuranceTable, queries.InsuranceIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.InsuranceUsecase.FindAll(ctx, session, args)
	if err != nil {
		writeError(ctrl.Log, w, r, "InsuranceController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Count, args.Page, args.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, fmt.Sprintf(constvars.FindAllSuccessFormat, "insurance"), pagination, result.Data)
}

func (ctrl *InsuranceController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("InsuranceController.FindByID called",
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

	include, err := utils.BuildIncludeRequest(r, queries.InsuranceIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.InsuranceUsecase.FindByID(ctx, session, id, include)
	if err != nil {
		writeError(ctrl.Log, w, r, "InsuranceController.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.FindOneSuccessFormat, "insurance"), result)
}

func (ctrl *InsuranceController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("InsuranceController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateInsurance)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("InsuranceController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.InsuranceUsecase.Create(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "InsuranceController.Create", err)
		return
	}

	ctrl.Log.Info("InsuranceController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessFormat, "insurance"), result)
}

func (ctrl *InsuranceController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("InsuranceController.Update called",
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

	request := new(requests.UpdateInsurance)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("InsuranceController.Update validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.InsuranceUsecase.Update(ctx, session, id, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "InsuranceController.Update", err)
		return
	}

	ctrl.Log.Info("InsuranceController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessFormat, "insurance"), result)
}

func (ctrl *InsuranceController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("InsuranceController.Delete called",
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

	err = ctrl.InsuranceUsecase.Delete(ctx, session, id)
	if err != nil {
		writeError(ctrl.Log, w, r, "InsuranceController.Delete", err)
		return
	}

	ctrl.Log.Info("InsuranceController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessFormat, "insurance"), nil)
}
