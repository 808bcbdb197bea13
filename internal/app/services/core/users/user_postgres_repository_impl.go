package users

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

type userPostgresRepository struct {
	DB *sql.DB
}

var (
	userPostgresRepositoryInstance contracts.UserRepository
	onceUserPostgresRepository     sync.Once
)

func NewUserPostgresRepository(db *sql.DB) contracts.UserRepository {
	onceUserPostgresRepository.Do(func() {
		userPostgresRepositoryInstance = &userPostgresRepository{
			DB: db,
		}
	})
	return userPostgresRepositoryInstance
}

func scanUser(row queries.RowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.ExternalID,
		&user.TenantID,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (repo *userPostgresRepository) FindMany(ctx context.Context, args *requests.FindArgs) ([]models.User, error) {
	return queries.FindMany(ctx, repo.DB, queries.UserTable, args, scanUser)
}

func (repo *userPostgresRepository) Count(ctx context.Context, args *requests.FindArgs) (int, error) {
	return queries.Count(ctx, repo.DB, queries.UserTable, args)
}

func (repo *userPostgresRepository) FindFirst(ctx context.Context, args *requests.FindArgs) (*models.User, error) {
	return queries.FindFirst(ctx, repo.DB, queries.UserTable, args, scanUser)
}

func (repo *userPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(repo.DB.QueryRowContext(ctx, queries.FindUserByEmail, email))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return user, nil
}

func (repo *userPostgresRepository) Create(ctx context.Context, entity *models.User) (*models.User, error) {
	user, err := scanUser(repo.DB.QueryRowContext(ctx, queries.InsertUser,
		entity.ID,
		entity.Email,
		entity.FirstName,
		entity.LastName,
		entity.Role,
		entity.ExternalID,
		entity.TenantID,
		entity.PasswordHash,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBInsertData)
	}
	return user, nil
}

// Update keeps the stored password hash when entity.PasswordHash is empty.
func (repo *userPostgresRepository) Update(ctx context.Context, entity *models.User) (*models.User, error) {
	user, err := scanUser(repo.DB.QueryRowContext(ctx, queries.UpdateUser,
		entity.Email,
		entity.FirstName,
		entity.LastName,
		entity.Role,
		entity.ExternalID,
		entity.PasswordHash,
		entity.ID,
	))
	if err != nil {
		return nil, utils.MapWriteError(err, exceptions.ErrPostgresDBUpdateData)
	}
	return user, nil
}

func (repo *userPostgresRepository) Delete(ctx context.Context, id string) error {
	result, err := repo.DB.ExecContext(ctx, queries.DeleteUser, id)
	if err != nil {
		return utils.MapDeleteError(err, constvars.EntityUser)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return exceptions.ErrPostgresDBDeleteData(err)
	}
	if affected == 0 {
		return exceptions.ErrResourceNotExist(nil, constvars.EntityUser)
	}
	return nil
}

func (repo *userPostgresRepository) CountRelations(ctx context.Context, ids []string) (map[string]map[string]int, error) {
	return queries.CountRelations(ctx, repo.DB, queries.CountUserRelations, ids, queries.UserCountKeys)
}
