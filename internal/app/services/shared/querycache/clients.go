package querycache

import (
	"clinic-admin-service/internal/app/contracts"
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

// QueryClients groups the cached readers of every entity. Usecases read
// related records through the reader of the related entity.
type QueryClients struct {
	Users          *QueryClient[models.User]
	Clinics        *QueryClient[models.Clinic]
	Insurances     *QueryClient[models.Insurance]
	Appointments   *QueryClient[models.Appointment]
	Billings       *QueryClient[models.Billing]
	MedicalRecords *QueryClient[models.MedicalRecord]
}

func NewQueryClients(
	redis contracts.RedisRepository,
	userRepository contracts.UserRepository,
	clinicRepository contracts.ClinicRepository,
	insuranceRepository contracts.InsuranceRepository,
	appointmentRepository contracts.AppointmentRepository,
	billingRepository contracts.BillingRepository,
	medicalRecordRepository contracts.MedicalRecordRepository,
	logger *zap.Logger,
	config Config,
) *QueryClients {
	return &QueryClients{
		Users:          NewQueryClient[models.User](redis, userRepository, logger, config, constvars.EntityUser, "User"),
		Clinics:        NewQueryClient[models.Clinic](redis, clinicRepository, logger, config, constvars.EntityClinic, "Clinic"),
		Insurances:     NewQueryClient[models.Insurance](redis, insuranceRepository, logger, config, constvars.EntityInsurance, "Insurance"),
		Appointments:   NewQueryClient[models.Appointment](redis, appointmentRepository, logger, config, constvars.EntityAppointment, "Appointment"),
		Billings:       NewQueryClient[models.Billing](redis, billingRepository, logger, config, constvars.EntityBilling, "Billing"),
		MedicalRecords: NewQueryClient[models.MedicalRecord](redis, medicalRecordRepository, logger, config, constvars.EntityMedicalRecord, "MedicalRecord"),
	}
}
