package queries

import (
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"context"
	"database/sql"
	"errors"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...interface{}) error
}

func buildError(err error) error {
	var unknownColumn *UnknownColumnError
	if errors.As(err, &unknownColumn) {
		return exceptions.ErrUnknownColumn(err)
	}
	return exceptions.ErrPostgresDBFindData(err)
}

// FindMany runs the select described by args and scans every row.
func FindMany[T any](ctx context.Context, db *sql.DB, table Table, args *requests.FindArgs, scan func(RowScanner) (*T, error)) ([]T, error) {
	query, params, err := table.SelectQuery(args)
	if err != nil {
		return nil, buildError(err)
	}

	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		model, err := scan(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		result = append(result, *model)
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return result, nil
}

// FindFirst returns nil, nil when no row matches.
func FindFirst[T any](ctx context.Context, db *sql.DB, table Table, args *requests.FindArgs, scan func(RowScanner) (*T, error)) (*T, error) {
	query, params, err := table.FirstQuery(args)
	if err != nil {
		return nil, buildError(err)
	}

	model, err := scan(db.QueryRowContext(ctx, query, params...))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return model, nil
}

func Count(ctx context.Context, db *sql.DB, table Table, args *requests.FindArgs) (int, error) {
	query, params, err := table.CountQuery(args)
	if err != nil {
		return 0, buildError(err)
	}

	var total int
	err = db.QueryRowContext(ctx, query, params...).Scan(&total)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return total, nil
}

// CountRelations scans rows of the form (id, count...) into id -> key -> count.
func CountRelations(ctx context.Context, db *sql.DB, query string, ids []string, keys []string) (map[string]map[string]int, error) {
	result := make(map[string]map[string]int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := db.QueryContext(ctx, query, pqStringArray(ids))
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		counts := make([]int, len(keys))
		dest := make([]interface{}, 0, len(keys)+1)
		dest = append(dest, &id)
		for i := range counts {
			dest = append(dest, &counts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}

		entry := make(map[string]int, len(keys))
		for i, key := range keys {
			entry[key] = counts[i]
		}
		result[id] = entry
	}

	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return result, nil
}
