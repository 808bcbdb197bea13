package queries

import "clinic-admin-service/internal/pkg/constvars"

var BillingTable = Table{
	Name:         "billings",
	Columns:      "id, amount_due, payment_status, billing_date, patient_id, clinic_id, insurance_id, appointment_id, created_at, updated_at",
	Filterable:   columnSet("id", "patient_id", "clinic_id", "insurance_id", "appointment_id", "payment_status"),
	Sortable:     columnSet("amount_due", "payment_status", "billing_date", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id", "patient_id", "clinic_id", "insurance_id", "appointment_id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertBilling = `
		INSERT INTO billings (
			id, amount_due, payment_status, billing_date, patient_id, clinic_id, insurance_id, appointment_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, amount_due, payment_status, billing_date, patient_id, clinic_id, insurance_id, appointment_id, created_at, updated_at
	`

	UpdateBilling = `
		UPDATE billings
		SET amount_due = $1, payment_status = $2, billing_date = $3, patient_id = $4, clinic_id = $5,
			insurance_id = $6, appointment_id = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING id, amount_due, payment_status, billing_date, patient_id, clinic_id, insurance_id, appointment_id, created_at, updated_at
	`

	DeleteBilling = `DELETE FROM billings WHERE id = $1`
)

// BillingRelations maps each includable relation to the entity it reads.
var BillingRelations = map[string]string{
	"user":        constvars.EntityUser,
	"clinic":      constvars.EntityClinic,
	"insurance":   constvars.EntityInsurance,
	"appointment": constvars.EntityAppointment,
}

var BillingIncludes = []string{"user", "clinic", "insurance", "appointment"}
