package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type BillingRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Billing, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Billing, error)
	Create(ctx context.Context, entity *models.Billing) (*models.Billing, error)
	Update(ctx context.Context, entity *models.Billing) (*models.Billing, error)
	Delete(ctx context.Context, id string) error
}

type BillingUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.Billing], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.Billing, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateBilling) (*models.Billing, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateBilling) (*models.Billing, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
