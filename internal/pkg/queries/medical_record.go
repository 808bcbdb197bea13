package queries

import "clinic-admin-service/internal/pkg/constvars"

var MedicalRecordTable = Table{
	Name:         "medical_records",
	Columns:      "id, diagnosis, treatment_plan, prescription, notes, patient_id, doctor_id, created_at, updated_at",
	Filterable:   columnSet("id", "patient_id", "doctor_id", "diagnosis", "treatment_plan", "prescription", "notes"),
	Sortable:     columnSet("diagnosis", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id", "patient_id", "doctor_id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertMedicalRecord = `
		INSERT INTO medical_records (
			id, diagnosis, treatment_plan, prescription, notes, patient_id, doctor_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		) RETURNING id, diagnosis, treatment_plan, prescription, notes, patient_id, doctor_id, created_at, updated_at
	`

	UpdateMedicalRecord = `
		UPDATE medical_records
		SET diagnosis = $1, treatment_plan = $2, prescription = $3, notes = $4, patient_id = $5, doctor_id = $6,
			updated_at = NOW()
		WHERE id = $7
		RETURNING id, diagnosis, treatment_plan, prescription, notes, patient_id, doctor_id, created_at, updated_at
	`

	DeleteMedicalRecord = `DELETE FROM medical_records WHERE id = $1`
)

// MedicalRecordRelations maps each includable relation to the entity it reads.
var MedicalRecordRelations = map[string]string{
	"patient": constvars.EntityUser,
	"doctor":  constvars.EntityUser,
}

var MedicalRecordIncludes = []string{"patient", "doctor"}
