package contracts

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/dto/responses"
	"context"
)

type MedicalRecordRepository interface {
	FindMany(ctx context.Context, args *requests.FindArgs) ([]models.MedicalRecord, error)
	Count(ctx context.Context, args *requests.FindArgs) (int, error)
	FindFirst(ctx context.Context, args *requests.FindArgs) (*models.MedicalRecord, error)
	Create(ctx context.Context, entity *models.MedicalRecord) (*models.MedicalRecord, error)
	Update(ctx context.Context, entity *models.MedicalRecord) (*models.MedicalRecord, error)
	Delete(ctx context.Context, id string) error
}

type MedicalRecordUsecase interface {
	FindAll(ctx context.Context, session *models.Session, args *requests.FindArgs) (*responses.FindManyWithCount[models.MedicalRecord], error)
	FindByID(ctx context.Context, session *models.Session, id string, include []string) (*models.MedicalRecord, error)
	Create(ctx context.Context, session *models.Session, request *requests.CreateMedicalRecord) (*models.MedicalRecord, error)
	Update(ctx context.Context, session *models.Session, id string, request *requests.UpdateMedicalRecord) (*models.MedicalRecord, error)
	Delete(ctx context.Context, session *models.Session, id string) error
}
