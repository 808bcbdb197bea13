package routers

import (
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, middlewares *middlewares.Middlewares, authController *controllers.AuthController) {
	loginLimiter := middlewares.NewLoginRateLimiter()

	router.With(loginLimiter.Limit, middlewares.BodyLimit).Post("/login", authController.Login)
	router.With(middlewares.Authenticate).Post("/logout", authController.Logout)
	router.With(middlewares.Authenticate).Get("/me", authController.Me)
}
