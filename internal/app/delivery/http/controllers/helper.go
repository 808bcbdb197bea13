package controllers

import (
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func sessionFromRequest(r *http.Request) (*models.Session, error) {
	session, ok := middlewares.SessionFromContext(r.Context())
	if !ok {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	return session, nil
}

func idFromRequest(r *http.Request, param string) (string, error) {
	id := chi.URLParam(r, param)
	if _, err := uuid.Parse(id); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, param)
	}
	return id, nil
}

func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

// writeError logs the failure and renders it, turning an expired request
// context into a gateway timeout.
func writeError(log *zap.Logger, w http.ResponseWriter, r *http.Request, caller string, err error) {
	log.Error(caller+" error",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
