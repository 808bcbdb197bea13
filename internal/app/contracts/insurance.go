package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type InsuranceRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Insurance, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Insurance, error)
	Create(ctx context.Context, entity *models.Insurance) (*models.Insurance, error)
	Update(ctx context.Context, entity *models.Insurance) (*models.Insurance, error)
	Delete(ctx context.Context, id string) error
}

type InsuranceUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Insurance], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Insurance, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateInsurance) (*models.Insurance, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateInsurance) (*models.Insurance, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
