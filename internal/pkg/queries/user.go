package queries

import "clinic-admin-service/internal/pkg/constvars"

var UserTable = Table{
	Name:         "users",
	Columns:      "id, email, first_name, last_name, role, external_id, tenant_id, password_hash, created_at, updated_at",
	Filterable:   columnSet("id", "email", "first_name", "last_name", "role", "external_id", "tenant_id"),
	Sortable:     columnSet("email", "first_name", "last_name", "role", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertUser = `
		INSERT INTO users (
			id, email, first_name, last_name, role, external_id, tenant_id, password_hash, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW()
		) RETURNING id, email, first_name, last_name, role, external_id, tenant_id, password_hash, created_at, updated_at
	`

	UpdateUser = `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, role = $4, external_id = $5,
			password_hash = COALESCE(NULLIF($6, ''), password_hash), updated_at = NOW()
		WHERE id = $7
		RETURNING id, email, first_name, last_name, role, external_id, tenant_id, password_hash, created_at, updated_at
	`

	DeleteUser = `DELETE FROM users WHERE id = $1`

	FindUserByEmail = `
		SELECT id, email, first_name, last_name, role, external_id, tenant_id, password_hash, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`

	CountUserRelations = `
		SELECT u.id,
			(SELECT COUNT(*) FROM clinics c WHERE c.user_id = u.id),
			(SELECT COUNT(*) FROM appointments a WHERE a.patient_id = u.id),
			(SELECT COUNT(*) FROM appointments a WHERE a.doctor_id = u.id),
			(SELECT COUNT(*) FROM medical_records m WHERE m.patient_id = u.id),
			(SELECT COUNT(*) FROM medical_records m WHERE m.doctor_id = u.id),
			(SELECT COUNT(*) FROM billings b WHERE b.patient_id = u.id),
			(SELECT COUNT(*) FROM insurances i WHERE i.patient_id = u.id)
		FROM users u
		WHERE u.id = ANY($1)
	`
)

// Keys of the user `_count` map, in CountUserRelations column order.
var UserCountKeys = []string{
	"clinic",
	"appointment_patient",
	"appointment_doctor",
	"medical_record_patient",
	"medical_record_doctor",
	"billing",
	"insurance",
}

// UserRelations maps each includable relation to the entity it reads.
var UserRelations = map[string]string{}

var UserIncludes = []string{constvars.IncludeCount}
