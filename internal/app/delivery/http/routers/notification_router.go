package routers

import (
	"clinic-admin-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, notificationController *controllers.NotificationController) {
	router.Get("/", notificationController.FindAll)
	router.Put("/{notification_id}/read", notificationController.MarkRead)
}
