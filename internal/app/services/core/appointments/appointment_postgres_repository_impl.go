package appointments

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

type appointmentPostgresRepository struct {
	DB *sql.DB
}

var (
	appointmentPostgresRepositoryInstance contracts.AppointmentRepository
	onceAppointmentPostgresRepository     sync.Once
)

func NewAppointmentPostgresRepository(db *sql.DB) contracts.AppointmentRepository {
	onceAppointmentPostgresRepository.Do(func() {
		appointmentPostgresRepositoryInstance = &appointmentPostgresRepository{
			DB: db,
		}
	})
	return appointmentPostgresRepositoryInstance
}

func scanAppointment(row queries.RowScanner) (*models.Appointment, error) {
	var appointment models.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.AppointmentDate,
		&appointment.Status,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.ClinicID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (repo *appointmentPostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.Appointment, error) {
	return queries.FindMany(ctx, repo.DB, queries.AppointmentTable, args, scanAppointment)
}

func (repo *appointmentPostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.AppointmentTable, args)
}

func (repo *appointmentPostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.Appointment, error) {
	return queries.FindFirst(ctx, repo.DB, queries.AppointmentTable, args, scanAppointment)
}

func (repo *appointmentPostgresRepository) Create(ctx context.Context, entity *models.Appointment) (*models.Appointment, error) {
	appointment, err := scanAppointment(repo.DB.QueryRowContext(ctx, queries.InsertAppointment,
		entity.ID,
		entity.AppointmentDate,
		entity.Status,
		entity.PatientID,
		entity.DoctorID,
		entity.ClinicID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return appointment, nil
}

func (repo *appointmentPostgresRepository) Update(ctx context.Context, entity *models.Appointment) (*models.Appointment, error) {
	appointment, err := scanAppointment(repo.DB.QueryRowContext(ctx, queries.UpdateAppointment,
		entity.AppointmentDate,
		entity.Status,
		entity.PatientID,
		entity.DoctorID,
		entity.ClinicID,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return appointment, nil
}

func (repo *appointmentPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteAppointment, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityAppointment)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityAppointment)
	}
	return nil
}
