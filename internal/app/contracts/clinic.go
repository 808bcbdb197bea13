package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type ClinicRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Clinic, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Clinic, error)
	Create(ctx context.Context, entity *models.Clinic) (*models.Clinic, error)
	Update(ctx context.Context, entity *models.Clinic) (*models.Clinic, error)
	Delete(ctx context.Context, id string) error
	CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error)
}

type ClinicUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Clinic], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Clinic, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateClinic) (*models.Clinic, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateClinic) (*models.Clinic, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
