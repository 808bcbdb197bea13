package queries

import "clinic-admin-service/internal/pkg/constvars"

var InsuranceTable = Table{
	Name:         "insurances",
	Columns:      "id, insurance_name, policy_number, coverage_start_date, coverage_end_date, patient_id, clinic_id, created_at, updated_at",
	Filterable:   columnSet("id", "insurance_name", "policy_number", "patient_id", "clinic_id"),
	Sortable:     columnSet("insurance_name", "policy_number", "coverage_start_date", "coverage_end_date", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id", "patient_id", "clinic_id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertInsurance = `
		INSERT INTO insurances (
			id, insurance_name, policy_number, coverage_start_date, coverage_end_date, patient_id, clinic_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, insurance_name, policy_number, coverage_start_date, coverage_end_date, patient_id, clinic_id, created_at, updated_at
	`

	UpdateInsurance = `
		UPDATE insurances
		SET insurance_name = $1, policy_number = $2, coverage_start_date = $3, coverage_end_date = $4,
			patient_id = $5, clinic_id = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, insurance_name, policy_number, coverage_start_date, coverage_end_date, patient_id, clinic_id, created_at, updated_at
	`

	DeleteInsurance = `DELETE FROM insurances WHERE id = $1`
)

// InsuranceRelations maps each includable relation to the entity it reads.
var InsuranceRelations = map[string]string{
	"user":   constvars.EntityUser,
	"clinic": constvars.EntityClinic,
}

var InsuranceIncludes = []string{"user", "clinic"}
