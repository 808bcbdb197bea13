package queries

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
)

// Table describes the selectable shape of one relation. Only whitelisted
// columns ever reach the generated SQL.
type Table struct {
	Name         string
	Columns      string
	Filterable   map[string]bool
	Sortable     map[string]bool
	// UUIDColumns are typed UUID in postgres; filter values must parse as one.
	UUIDColumns  map[string]bool
	DefaultOrder string
}

type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %q is not allowed on %s", e.Column, e.Table)
}

func (t Table) IsFilterable(column string) bool {
	return t.Filterable[column]
}

func (t Table) IsUUID(column string) bool {
	return t.UUIDColumns[column]
}

func (t Table) IsSortable(column string) bool {
	return t.Sortable[column]
}

func (t Table) SelectQuery(args *requests.FindArgs) (string, []interface{}, error) {
	where, params, err := t.buildWhere(args)
	if err != nil {
		return "", nil, err
	}

	order, err := t.buildOrder(args)
	if err != nil {
		return "", nil, err
	}

	var query strings.Builder
	fmt.Fprintf(&query, "SELECT %s FROM %s%s ORDER BY %s", t.Columns, t.Name, where, order)
	if args != nil && args.PageSize > 0 {
		params = append(params, args.PageSize, args.Offset())
		fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", len(params)-1, len(params))
	}
	return query.String(), params, nil
}

func (t Table) FirstQuery(args *requests.FindArgs) (string, []interface{}, error) {
	where, params, err := t.buildWhere(args)
	if err != nil {
		return "", nil, err
	}

	order, err := t.buildOrder(args)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT 1", t.Columns, t.Name, where, order), params, nil
}

func (t Table) CountQuery(args *requests.FindArgs) (string, []interface{}, error) {
	where, params, err := t.buildWhere(args)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s%s", t.Name, where), params, nil
}

func (t Table) buildWhere(args *requests.FindArgs) (string, []interface{}, error) {
	if args == nil || len(args.Where) == 0 {
		return "", nil, nil
	}

	columns := make([]string, 0, len(args.Where))
	for column := range args.Where {
		if !t.Filterable[column] {
			return "", nil, &UnknownColumnError{Table: t.Name, Column: column}
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	conditions := make([]string, 0, len(columns))
	params := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		switch value := args.Where[column].(type) {
		case nil:
			conditions = append(conditions, column+" IS NULL")
		case []string:
			params = append(params, pq.Array(value))
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", column, len(params)))
		case []interface{}:
			values := make([]string, 0, len(value))
			for _, item := range value {
				values = append(values, fmt.Sprint(item))
			}
			params = append(params, pq.Array(values))
			conditions = append(conditions, fmt.Sprintf("%s = ANY($%d)", column, len(params)))
		default:
			params = append(params, value)
			conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(params)))
		}
	}
	return " WHERE " + strings.Join(conditions, " AND "), params, nil
}

func (t Table) buildOrder(args *requests.FindArgs) (string, error) {
	if args == nil || args.OrderBy == "" {
		return t.DefaultOrder, nil
	}
	if !t.Sortable[args.OrderBy] {
		return "", &UnknownColumnError{Table: t.Name, Column: args.OrderBy}
	}

	direction := "ASC"
	if strings.EqualFold(args.OrderDirection, constvars.OrderDirectionDesc) {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s, id ASC", args.OrderBy, direction), nil
}

func pqStringArray(values []string) interface{} {
	return pq.Array(values)
}

func columnSet(columns ...string) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, column := range columns {
		set[column] = true
	}
	return set
}
