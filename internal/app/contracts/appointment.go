package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type AppointmentRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Appointment, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Appointment, error)
	Create(ctx context.Context, entity *models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, entity *models.Appointment) (*models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type AppointmentUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Appointment], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Appointment, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateAppointment) (*models.Appointment, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateAppointment) (*models.Appointment, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
