package clinics

import (
	"clinic-admin-service/internal/app/models"
	"clinic-admin-service/internal/pkg/queries"
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClinicPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	repo := &clinicPostgresRepository{DB: db}

	dbMock.ExpectQuery(queries.InsertClinic).
		WithArgs("c-1", "Downtown Clinic", nil, nil, "owner-1", "tenant-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "image", "user_id", "tenant_id", "created_at", "updated_at"}).
			AddRow("c-1", "Downtown Clinic", nil, nil, "owner-1", "tenant-1", now, now))

	clinic, err := repo.Create(ctx, &models.Clinic{
		ID:       "c-1",
		Name:     "Downtown Clinic",
		UserID:   "owner-1",
		TenantID: "tenant-1",
	})

	require.NoError(t, err)
	assert.Nil(t, clinic.Description, "an omitted description should stay NULL")
	assert.Nil(t, clinic.Image)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
