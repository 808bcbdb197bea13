package controllers

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// multipartMemory is how much of an upload is kept in memory before spilling to disk.
const multipartMemory = 8 * constvars.MB

type AttachmentController struct {
	Log               *zap.Logger
	AttachmentUsecase contracts.AttachmentUsecase
	InternalConfig    *config.InternalConfig
}

func NewAttachmentController(logger *zap.Logger, attachmentUsecase contracts.AttachmentUsecase, internalConfig *config.InternalConfig) *AttachmentController {
	return &AttachmentController{
		Log:               logger,
		AttachmentUsecase: attachmentUsecase,
		InternalConfig:    internalConfig,
	}
}

func (ctrl *AttachmentController) Upload(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("AttachmentController.Upload called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	medicalRecordID, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Leave one extra megabyte for the multipart envelope.
	limit := (ctrl.InternalConfig.Minio.AttachmentMaxUploadSizeInMB + 1) * constvars.MB
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(maxBytesErr.Limit, ctrl.InternalConfig.Minio.AttachmentMaxUploadSizeInMB*constvars.MB))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(constvars.FormFieldFile)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get(constvars.HeaderContentType)
	if contentType == "" {
		contentType = constvars.MIMEOctetStream
	}

	request := &requests.UploadAttachment{
		MedicalRecordID: medicalRecordID,
		FileName:        header.Filename,
		ContentType:     contentType,
		Size:            header.Size,
		Content:         file,
	}
	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AttachmentUsecase.Upload(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "AttachmentController.Upload", err)
		return
	}

	ctrl.Log.Info("AttachmentController.Upload succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, result.ObjectName),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.UploadAttachmentSuccess, result)
}

func (ctrl *AttachmentController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	medicalRecordID, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, err := ctrl.AttachmentUsecase.FindAll(ctx, session, medicalRecordID)
	if err != nil {
		writeError(ctrl.Log, w, r, "AttachmentController.FindAll", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAttachmentsSuccess, result)
}

func (ctrl *AttachmentController) Delete(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	medicalRecordID, err := idFromRequest(r, constvars.URLParamID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	objectName := utils.AttachmentPrefix(medicalRecordID) + "/" + chi.URLParam(r, constvars.URLParamObjectName)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	err = ctrl.AttachmentUsecase.Delete(ctx, session, medicalRecordID, objectName)
	if err != nil {
		writeError(ctrl.Log, w, r, "AttachmentController.Delete", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAttachmentSuccess, nil)
}
