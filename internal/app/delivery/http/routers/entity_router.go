package routers

import (
	"clinic-admin-service/internal/app/delivery/http/middlewares"
	"clinic-admin-service/internal/pkg/constvars"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// entityController is the list/view/create/edit/delete surface every entity
// controller exposes.
type entityController interface {
	FindAll(w http.ResponseWriter, r *http.Request)
	FindByID(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func attachEntityRoutes(router chi.Router, middlewares *middlewares.Middlewares, entity string, controller entityController) {
	router.Use(middlewares.Authenticate)

	router.With(middlewares.RequireAccess(entity, constvars.AccessOperationRead)).Get("/", controller.FindAll)
	router.With(middlewares.BodyLimit, middlewares.RequireAccess(entity, constvars.AccessOperationCreate)).Post("/", controller.Create)
	router.With(middlewares.RequireAccess(entity, constvars.AccessOperationRead)).Get("/{id}", controller.FindByID)
	router.With(middlewares.BodyLimit, middlewares.RequireAccess(entity, constvars.AccessOperationUpdate)).Put("/{id}", controller.Update)
	router.With(middlewares.RequireAccess(entity, constvars.AccessOperationDelete)).Delete("/{id}", controller.Delete)
}
