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

type BillingController struct {
	Log            *zap.Logger
	BillingUsecase    contracts.BillingUsecase
	InternalConfig *config.InternalConfig
}

func NewBillingController(logger *zap.Logger, billingUsecase contracts.BillingUsecase, internalConfig *config.InternalConfig) *BillingController {
	return &BillingController{
		Log:            logger,
		BillingUsecase:    billingUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *BillingController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BillingController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	args, err := utils.BuildFindArgsRequest(r, queries.BillingTable, queries.BillingIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.BillingUsecase.FindAll(ctx, session, args)
	if err != nil {
		writeError(ctrl.Log, w, r, "BillingController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Count, args.Page, args.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, fmt.Sprintf(constvars.FindAllSuccessFormat, "billing"), pagination, result.Data)
}

func (ctrl *BillingController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BillingController.FindByID called",
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

	include, err := utils.BuildIncludeRequest(r, queries.BillingIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.BillingUsecase.FindByID(ctx, session, id, include)
	if err != nil {
		writeError(ctrl.Log, w, r, "BillingController.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.FindOneSuccessFormat, "billing"), result)
}

func (ctrl *BillingController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BillingController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateBilling)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("BillingController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.BillingUsecase.Create(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "BillingController.Create", err)
		return
	}

	ctrl.Log.Info("BillingController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessFormat, "billing"), result)
}

func (ctrl *BillingController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BillingController.Update called",
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

	request := new(requests.UpdateBilling)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("BillingController.Update validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.BillingUsecase.Update(ctx, session, id, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "BillingController.Update", err)
		return
	}

	ctrl.Log.Info("BillingController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessFormat, "billing"), result)
}

func (ctrl *BillingController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("BillingController.Delete called",
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

	err = ctrl.BillingUsecase.Delete(ctx, session, id)
	if err != nil {
		writeError(ctrl.Log, w, r, "BillingController.Delete", err)
		return
	}

	ctrl.Log.Info("BillingController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessFormat, "billing"), nil)
}
