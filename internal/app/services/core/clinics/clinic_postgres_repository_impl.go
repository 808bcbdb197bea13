package clinics

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/queries"
	"clinic-admin-service/internal/pkg/utils"
	"context"
	"database/sql"
	"sync"
)

type clinicPostgresRepository struct {
	DB *sql.DB
}

var (
	clinicPostgresRepositoryInstance contracts.ClinicRepository
	onceClinicPostgresRepository     sync.Once
)

func NewClinicPostgresRepository(db *sql.DB) contracts.ClinicRepository {
	onceClinicPostgresRepository.Do(func() {
		clinicPostgresRepositoryInstance = &clinicPostgresRepository{
			DB: db,
		}
	})
	return clinicPostgresRepositoryInstance
}

func scanClinic(row queries.RowScanner) (*models.Clinic, error) {
	var clinic models.Clinic
	err := row.Scan(
		&clinic.ID,
		&clinic.Name,
		&clinic.Description,
		&clinic.Image,
		&clinic.UserID,
		&clinic.TenantID,
		&clinic.CreatedAt,
		&clinic.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &clinic, nil
}

func (repo *clinicPostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Clinic, error) {
	return queries.FindMany(ctx, repo.DB, queries.ClinicTable, args, scanClinic)
}

func (repo *clinicPostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.ClinicTable, args)
}

func (repo *clinicPostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Clinic, error) {
	return queries.FindFirst(ctx, repo.DB, queries.ClinicTable, args, scanClinic)
}

func (repo *clinicPostgresRepository) Create(ctx context.Context, entity *models.Clinic) (*models.Clinic, error) {
	clinic, err := scanClinic(repo.DB.QueryRowContext(ctx, queries.InsertClinic,
		entity.ID,
		entity.Name,
		entity.Description,
		entity.Image,
		entity.UserID,
		entity.TenantID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return clinic, nil
}

func (repo *clinicPostgresRepository) Update(ctx context.Context, entity *models.Clinic) (*models.Clinic, error) {
	clinic, err := scanClinic(repo.DB.QueryRowContext(ctx, queries.UpdateClinic,
		entity.Name,
		entity.Description,
		entity.Image,
		entity.UserID,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return clinic, nil
}

func (repo *clinicPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteClinic, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityClinic)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityClinic)
	}
	return nil
}

func (repo *clinicPostgresRepository) CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error) {
	return queries.CountRelations(ctx, repo.DB, queries.CountClinicRelations, ids, queries.ClinicCountKeys)
}
