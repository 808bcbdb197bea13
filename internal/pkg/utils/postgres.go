package utils

import (
	"clinic-admin-service/internal/pkg/exceptions"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// ForeignKeyViolation reports the violated constraint when err is a postgres
// foreign key error.
func ForeignKeyViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func UniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

// MapWriteError turns a failed insert or update into a client error. A
// missing referenced row is reported as such; anything else goes to fallback.
func MapWriteError(err error, fallback func(error) *exceptions.CustomError) error {
	if err == sql.ErrNoRows {
		return exceptions.ErrResourceNotExist(err, "record")
	}
	if constraint, ok := ForeignKeyViolation(err); ok {
		return exceptions.ErrRelatedResourceMissing(err, constraint)
	}
	if _, ok := UniqueViolation(err); ok {
		return exceptions.ErrEmailAlreadyExist(err)
	}
	return fallback(err)
}

// MapDeleteError reports rows still referencing entity as a conflict.
func MapDeleteError(err error, entity string) error {
	if constraint, ok := ForeignKeyViolation(err); ok {
		return exceptions.ErrResourceStillReferenced(err, entity, constraint)
	}
	return exceptions.ErrPostgresDBDeleteData(err)
}
