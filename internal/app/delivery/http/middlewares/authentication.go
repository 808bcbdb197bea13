package middlewares

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into a session and stores it in the
// request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.BearerPrefix) {
			m.Log.Info("Middlewares.Authenticate token missing",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.BearerPrefix))
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		session, err := m.AuthUsecase.ResolveSession(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAccess rejects the request unless one of the session roles may run
// operation on entity.
func (m *Middlewares) RequireAccess(entity, operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, _ := SessionFromContext(r.Context())

			err := m.AccessService.Authorize(session, entity, operation)
			if err != nil {
				m.Log.Info("Middlewares.RequireAccess denied",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingEntityKey, entity),
					zap.String("operation", operation),
				)
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func SessionFromContext(ctx context.Context) (*models.Session, bool) {
	session, ok := ctx.Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	return session, ok && session != nil
}
