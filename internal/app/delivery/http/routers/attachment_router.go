package routers

import (
	"clinic-admin-service/internal/app/delivery/http/controllers"
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

// attachAttachmentRoutes mounts under /medical-records/{id}/attachments and
// relies on the parent router to authenticate.
func attachAttachmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, attachmentController *controllers.AttachmentController) {
	router.With(middlewares.RequireAccess(constvars.EntityMedicalRecord, constvars.AccessOperationRead)).Get("/", attachmentController.FindAll)
	router.With(middlewares.RequireAccess(constvars.EntityMedicalRecord, constvars.AccessOperationUpdate)).Post("/", attachmentController.Upload)
	router.With(middlewares.RequireAccess(constvars.EntityMedicalRecord, constvars.AccessOperationUpdate)).Delete("/{object_name}", attachmentController.Delete)
}
