package routers

import (
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppConfigRoutes(router chi.Router, appConfigController *controllers.AppConfigController) {
	router.Get("/", appConfigController.GetAppConfig)
}

func attachRoleRoutes(router chi.Router, middlewares *middlewares.Middlewares, appConfigController *controllers.AppConfigController) {
	router.With(middlewares.Authenticate).Get("/", appConfigController.GetRoles)
}
