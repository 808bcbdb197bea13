package users

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

var userColumns = []string{"id", "email", "first_name", "last_name", "role", "external_id", "tenant_id", "password_hash", "created_at", "updated_at"}

func TestUserPostgresRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	repo := &userPostgresRepository{DB: db}

	dbMock.ExpectQuery(queries.InsertUser).
		WithArgs("u-1", "nurse@clinic.test", nil, nil, "Medical Staff", nil, "tenant-1", "hash").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "nurse@clinic.test", nil, nil, "Medical Staff", nil, "tenant-1", "hash", now, now))

	user, err := repo.Create(ctx, &models.User{
		ID:           "u-1",
		Email:        "nurse@clinic.test",
		Role:         "Medical Staff",
		TenantID:     "tenant-1",
		PasswordHash: "hash",
	})

	require.NoError(t, err)
	assert.Nil(t, user.FirstName, "a user without a first name should be stored with NULL")
	assert.Nil(t, user.LastName)
	assert.Nil(t, user.ExternalID)
	assert.Equal(t, "nurse@clinic.test", user.DisplayName())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUserPostgresRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()

	db, dbMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()
	repo := &userPostgresRepository{DB: db}

	dbMock.ExpectQuery(queries.FindUserByEmail).
		WithArgs("missing@clinic.test").
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.FindByEmail(ctx, "missing@clinic.test")

	require.NoError(t, err)
	assert.Nil(t, user, "an unknown email is not an error")
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
