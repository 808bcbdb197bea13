package queries

import "clinic-admin-service/internal/pkg/constvars"

var ClinicTable = Table{
	Name:         "clinics",
	Columns:      "id, name, description, image, user_id, tenant_id, created_at, updated_at",
	Filterable:   columnSet("id", "name", "user_id", "tenant_id"),
	Sortable:     columnSet("name", "created_at", "updated_at"),
	UUIDColumns:  columnSet("id", "user_id"),
	DefaultOrder: "created_at DESC, id ASC",
}

const (
	InsertClinic = `
		INSERT INTO clinics (
			id, name, description, image, user_id, tenant_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		) RETURNING id, name, description, image, user_id, tenant_id, created_at, updated_at
	`

	UpdateClinic = `
		UPDATE clinics
		SET name = $1, description = $2, image = $3, user_id = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, description, image, user_id, tenant_id, created_at, updated_at
	`

	DeleteClinic = `DELETE FROM clinics WHERE id = $1`

	CountClinicRelations = `
		SELECT c.id,
			(SELECT COUNT(*) FROM appointments a WHERE a.clinic_id = c.id),
			(SELECT COUNT(*) FROM billings b WHERE b.clinic_id = c.id),
			(SELECT COUNT(*) FROM insurances i WHERE i.clinic_id = c.id)
		FROM clinics c
		WHERE c.id = ANY($1)
	`
)

// Keys of the clinic `_count` map, in CountClinicRelations column order.
var ClinicCountKeys = []string{"appointment", "billing", "insurance"}

// ClinicRelations maps each includable relation to the entity it reads.
var ClinicRelations = map[string]string{
	"user": constvars.EntityUser,
}

var ClinicIncludes = []string{"user", constvars.IncludeCount}
