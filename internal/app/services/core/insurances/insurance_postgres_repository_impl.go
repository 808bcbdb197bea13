package insurances

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

type insurancePostgresRepository struct {
	DB *sql.DB
}

var (
	insurancePostgresRepositoryInstance contracts.InsuranceRepository
	onceInsurancePostgresRepository     sync.Once
)

func NewInsurancePostgresRepository(db *sql.DB) contracts.InsuranceRepository {
	onceInsurancePostgresRepository.Do(func() {
		insurancePostgresRepositoryInstance = &insurancePostgresRepository{
			DB: db,
		}
	})
	return insurancePostgresRepositoryInstance
}

func scanInsurance(row queries.RowScanner) (*models.Insurance, error) {
	var insurance models.Insurance
	err := row.Scan(
		&insurance.ID,
		&insurance.InsuranceName,
		&insurance.PolicyNumber,
		&insurance.CoverageStartDate,
		&insurance.CoverageEndDate,
		&insurance.PatientID,
		&insurance.ClinicID,
		&insurance.CreatedAt,
		&insurance.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &insurance, nil
}

func (repo *insurancePostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Insurance, error) {
	return queries.FindMany(ctx, repo.DB, queries.InsuranceTable, args, scanInsurance)
}

func (repo *insurancePostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.InsuranceTable, args)
}

func (repo *insurancePostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Insurance, error) {
	return queries.FindFirst(ctx, repo.DB, queries.InsuranceTable, args, scanInsurance)
}

func (repo *insurancePostgresRepository) Create(ctx context.Context, entity *models.Insurance) (*models.Insurance, error) {
	insurance, err := scanInsurance(repo.DB.QueryRowContext(ctx, queries.InsertInsurance,
		entity.ID,
		entity.InsuranceName,
		entity.PolicyNumber,
		entity.CoverageStartDate,
		entity.CoverageEndDate,
		entity.PatientID,
		entity.ClinicID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return insurance, nil
}

func (repo *insurancePostgresRepository) Update(ctx context.Context, entity *models.Insurance) (*models.Insurance, error) {
	insurance, err := scanInsurance(repo.DB.QueryRowContext(ctx, queries.UpdateInsurance,
		entity.InsuranceName,
		entity.PolicyNumber,
		entity.CoverageStartDate,
		entity.CoverageEndDate,
		entity.PatientID,
		entity.ClinicID,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return insurance, nil
}

func (repo *insurancePostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteInsurance, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityInsurance)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityInsurance)
	}
	return nil
}
