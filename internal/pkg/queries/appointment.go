package queries

import "clinic-admin-service/internal/pkg/constvars"

var AppointmentTable = Table{
	Name:         "appointments",
	Columns:      "id, appointment_date, status, patient_id, doctor_id, clinic_id, created_at, updated_at",
	Filterable:   columnSet("id", "status", "patient_id", "doctor_id", "clinic_id"),
	Sortable:     columnSet("appointment_date", "status", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id", "patient_id", "doctor_id", "clinic_id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertAppointment = `
		INSERT INTO appointments (
			id, appointment_date, status, patient_id, doctor_id, clinic_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING id, appointment_date, status, patient_id, doctor_id, clinic_id, created_at, updated_at
	`

	UpdateAppointment = `
		UPDATE appointments
		SET appointment_date = $1, status = $2, patient_id = $3, doctor_id = $4, clinic_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING id, appointment_date, status, patient_id, doctor_id, clinic_id, created_at, updated_at
	`

	DeleteAppointment = `DELETE FROM appointments WHERE id = $1`
)

// AppointmentRelations maps each includable relation to the entity it reads.
var AppointmentRelations = map[string]string{
	"patient": constvars.EntityUser,
	"doctor":  constvars.EntityUser,
	"clinic":  constvars.EntityClinic,
}

var AppointmentIncludes = []string{"patient", "doctor", "clinic"}
