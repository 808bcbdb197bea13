package billings

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

type billingPostgresRepository struct {
	DB *sql.DB
}

var (
	billingPostgresRepositoryInstance contracts.BillingRepository
	onceBillingPostgresRepository     sync.Once
)

func NewBillingPostgresRepository(db *sql.DB) contracts.BillingRepository {
	onceBillingPostgresRepository.Do(func() {
		billingPostgresRepositoryInstance = &billingPostgresRepository{
			DB: db,
		}
	})
	return billingPostgresRepositoryInstance
}

func scanBilling(row queries.RowScanner) (*models.Billing, error) {
	var billing models.Billing
	err := row.Scan(
		&billing.ID,
		&billing.AmountDue,
		&billing.PaymentStatus,
		&billing.BillingDate,
		&billing.PatientID,
		&billing.ClinicID,
		&billing.InsuranceID,
		&billing.AppointmentID,
		&billing.CreatedAt,
		&billing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &billing, nil
}

func (repo *billingPostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Billing, error) {
	return queries.FindMany(ctx, repo.DB, queries.BillingTable, args, scanBilling)
}

func (repo *billingPostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.BillingTable, args)
}

func (repo *billingPostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Billing, error) {
	return queries.FindFirst(ctx, repo.DB, queries.BillingTable, args, scanBilling)
}

func (repo *billingPostgresRepository) Create(ctx context.Context, entity *models.Billing) (*models.Billing, error) {
	billing, err := scanBilling(repo.DB.QueryRowContext(ctx, queries.InsertBilling,
		entity.ID,
		entity.AmountDue,
		entity.PaymentStatus,
		entity.BillingDate,
		entity.PatientID,
		entity.ClinicID,
		entity.InsuranceID,
		entity.AppointmentID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return billing, nil
}

func (repo *billingPostgresRepository) Update(ctx context.Context, entity *models.Billing) (*models.Billing, error) {
	billing, err := scanBilling(repo.DB.QueryRowContext(ctx, queries.UpdateBilling,
		entity.AmountDue,
		entity.PaymentStatus,
		entity.BillingDate,
		entity.PatientID,
		entity.ClinicID,
		entity.InsuranceID,
		entity.AppointmentID,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return billing, nil
}

func (repo *billingPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteBilling, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityBilling)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityBilling)
	}
	return nil
}
