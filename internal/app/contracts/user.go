package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type UserRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.User, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.User, error)
	Create(ctx context.Context, entity *models.User) (*models.User, error)
	Update(ctx context.Context, entity *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
	CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type UserUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.User], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.User, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateUser) (*models.User, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateUser) (*models.User, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
