package medicalrecords

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

type medicalRecordPostgresRepository struct {
	DB *sql.DB
}

var (
	medicalRecordPostgresRepositoryInstance contracts.MedicalRecordRepository
	onceMedicalRecordPostgresRepository     sync.Once
)

func NewMedicalRecordPostgresRepository(db *sql.DB) contracts.MedicalRecordRepository {
	onceMedicalRecordPostgresRepository.Do(func() {
		medicalRecordPostgresRepositoryInstance = &medicalRecordPostgresRepository{
			DB: db,
		}
	})
	return medicalRecordPostgresRepositoryInstance
}

func scanMedicalRecord(row queries.RowScanner) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := row.Scan(
		&record.ID,
		&record.Diagnosis,
		&record.TreatmentPlan,
		&record.Prescription,
		&record.Notes,
		&record.PatientID,
		&record.DoctorID,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (repo *medicalRecordPostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.MedicalRecord, error) {
	return queries.FindMany(ctx, repo.DB, queries.MedicalRecordTable, args, scanMedicalRecord)
}

func (repo *medicalRecordPostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.MedicalRecordTable, args)
}

func (repo *medicalRecordPostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.MedicalRecord, error) {
	return queries.FindFirst(ctx, repo.DB, queries.MedicalRecordTable, args, scanMedicalRecord)
}

func (repo *medicalRecordPostgresRepository) Create(ctx context.Context, entity *models.MedicalRecord) (*models.MedicalRecord, error) {
	record, err := scanMedicalRecord(repo.DB.QueryRowContext(ctx, queries.InsertMedicalRecord,
		entity.ID,
		entity.Diagnosis,
		entity.TreatmentPlan,
		entity.Prescription,
		entity.Notes,
		entity.PatientID,
		entity.DoctorID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return record, nil
}

func (repo *medicalRecordPostgresRepository) Update(ctx context.Context, entity *models.MedicalRecord) (*models.MedicalRecord, error) {
	record, err := scanMedicalRecord(repo.DB.QueryRowContext(ctx, queries.UpdateMedicalRecord,
		entity.Diagnosis,
		entity.TreatmentPlan,
		entity.Prescription,
		entity.Notes,
		entity.PatientID,
		entity.DoctorID,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return record, nil
}

func (repo *medicalRecordPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteMedicalRecord, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityMedicalRecord)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityMedicalRecord)
	}
	return nil
}
