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

type MedicalRecordController struct {
	Log            *zap.Logger
	MedicalRecordUsecase    contracts.MedicalRecordUsecase
	InternalConfig *config.InternalConfig
}

func NewMedicalRecordController(logger *zap.Logger, medicalRecordUsecase contracts.MedicalRecordUsecase, internalConfig *config.InternalConfig) *MedicalRecordController {
	return &MedicalRecordController{
		Log:            logger,
		MedicalRecordUsecase:    medicalRecordUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *MedicalRecordController) FindAll(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("MedicalRecordController.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	args, err := utils.BuildFindArgsRequest(r, queries.MedicalRecordTable, queries.MedicalRecordIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.MedicalRecordUsecase.FindAll(ctx, session, args)
	if err != nil {
		writeError(ctrl.Log, w, r, "MedicalRecordController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(result.Count, args.Page, args.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, fmt.Sprintf(constvars.FindAllSuccessFormat, "medical record"), pagination, result.Data)
}

func (ctrl *MedicalRecordController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("MedicalRecordController.FindByID called",
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

	include, err := utils.BuildIncludeRequest(r, queries.MedicalRecordIncludes)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.MedicalRecordUsecase.FindByID(ctx, session, id, include)
	if err != nil {
		writeError(ctrl.Log, w, r, "MedicalRecordController.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.FindOneSuccessFormat, "medical record"), result)
}

func (ctrl *MedicalRecordController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("MedicalRecordController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CreateMedicalRecord)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("MedicalRecordController.Create validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.MedicalRecordUsecase.Create(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "MedicalRecordController.Create", err)
		return
	}

	ctrl.Log.Info("MedicalRecordController.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, result.ID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, fmt.Sprintf(constvars.CreateSuccessFormat, "medical record"), result)
}

func (ctrl *MedicalRecordController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("MedicalRecordController.Update called",
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

	request := new(requests.UpdateMedicalRecord)
	if err := decodeJSON(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Info("MedicalRecordController.Update validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.MedicalRecordUsecase.Update(ctx, session, id, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "MedicalRecordController.Update", err)
		return
	}

	ctrl.Log.Info("MedicalRecordController.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.UpdateSuccessFormat, "medical record"), result)
}

func (ctrl *MedicalRecordController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("MedicalRecordController.Delete called",
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

	err = ctrl.MedicalRecordUsecase.Delete(ctx, session, id)
	if err != nil {
		writeError(ctrl.Log, w, r, "MedicalRecordController.Delete", err)
		return
	}

	ctrl.Log.Info("MedicalRecordController.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, id),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, fmt.Sprintf(constvars.DeleteSuccessFormat, "medical record"), nil)
}
