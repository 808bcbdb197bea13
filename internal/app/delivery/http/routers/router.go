package routers

import (
	"clinic-admin-service/internal/app/config"
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/utils"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Controllers struct {
	Auth          *controllers.AuthController
	AppConfig     *controllers.AppConfigController
	User          *controllers.UserController
	Clinic        *controllers.ClinicController
	Insurance     *controllers.InsuranceController
	Appointment   *controllers.AppointmentController
	Billing       *controllers.BillingController
	MedicalRecord *controllers.MedicalRecordController
	Attachment    *controllers.AttachmentController
	Notification  *controllers.NotificationController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrls *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{"Accept", constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimit())

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.BuildErrorResponse(middlewares.Log, w, exceptions.WrapWithoutError(constvars.StatusNotFound, constvars.ErrClientResourceNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)))
	})

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))
	versionPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.Version, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourceAuth, func(r chi.Router) {
				attachAuthRoutes(r, middlewares, ctrls.Auth)
			})

			r.Route("/"+constvars.ResourceAppConfig, func(r chi.Router) {
				attachAppConfigRoutes(r, ctrls.AppConfig)
			})

			r.Route("/"+constvars.ResourceRoles, func(r chi.Router) {
				attachRoleRoutes(r, middlewares, ctrls.AppConfig)
			})

			r.Route("/"+constvars.ResourceUsers, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityUser, ctrls.User)
			})

			r.Route("/"+constvars.ResourceClinics, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityClinic, ctrls.Clinic)
			})

			r.Route("/"+constvars.ResourceInsurances, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityInsurance, ctrls.Insurance)
			})

			r.Route("/"+constvars.ResourceAppointments, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityAppointment, ctrls.Appointment)
			})

			r.Route("/"+constvars.ResourceBillings, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityBilling, ctrls.Billing)
			})

			r.Route("/"+constvars.ResourceMedicalRecords, func(r chi.Router) {
				attachEntityRoutes(r, middlewares, constvars.EntityMedicalRecord, ctrls.MedicalRecord)

				if ctrls.Attachment != nil && internalConfig.Tenant.HasAddOn(config.AddOnFileUpload) {
					r.Route("/{id}/"+constvars.ResourceAttachments, func(r chi.Router) {
						attachAttachmentRoutes(r, middlewares, ctrls.Attachment)
					})
				}
			})

			if ctrls.Notification != nil && internalConfig.Tenant.HasAddOn(config.AddOnNotifications) {
				r.Route("/"+constvars.ResourceNotifications, func(r chi.Router) {
					r.Use(middlewares.Authenticate)
					attachNotificationRoutes(r, ctrls.Notification)
				})
			}
		})
	})
}
