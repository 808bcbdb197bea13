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
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase, internalConfig *config.InternalConfig) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *NotificationController) FindAll(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.FindNotifications)
	request.Page, request.PageSize = utils.BuildPaginationRequest(r)
	if raw := r.URL.Query().Get(constvars.URLQueryParamUnreadOnly); raw != "" {
		request.UnreadOnly, err = strconv.ParseBool(raw)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrQueryParamValidation(err, constvars.URLQueryParamUnreadOnly))
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	result, total, err := ctrl.NotificationUsecase.FindAll(ctx, session, request)
	if err != nil {
		writeError(ctrl.Log, w, r, "NotificationController.FindAll", err)
		return
	}

	pagination := utils.BuildPaginationResponse(total, request.Page, request.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, constvars.GetNotificationsSuccess, pagination, result)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	session, err := sessionFromRequest(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	notificationID := chi.URLParam(r, constvars.URLParamNotificationID)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.InternalConfig.App.RequestTimeout())
	defer cancel()

	err = ctrl.NotificationUsecase.MarkRead(ctx, session, notificationID)
	if err != nil {
		writeError(ctrl.Log, w, r, "NotificationController.MarkRead", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ReadNotificationSuccess, nil)
}
