package utils

import (
	"clinic-admin-service/internal/pkg/constvars"
	"clinic-admin-service/internal/pkg/dto/requests"
	"clinic-admin-service/internal/pkg/exceptions"
	"clinic-admin-service/internal/pkg/queries"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

var reservedQueryParams = map[string]bool{
	constvars.URLQueryParamPage:           true,
	constvars.URLQueryParamPageSize:       true,
	constvars.URLQueryParamInclude:        true,
	constvars.URLQueryParamOrderBy:        true,
	constvars.URLQueryParamOrderDirection: true,
	constvars.URLQueryParamFilter:         true,
}

func BuildPaginationRequest(r *http.Request) (page, pageSize int) {
	page, err := strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPage))
	if err != nil || page <= 0 {
		page = constvars.DefaultPage
	}

	pageSize, err = strconv.Atoi(r.URL.Query().Get(constvars.URLQueryParamPageSize))
	if err != nil || pageSize <= 0 {
		pageSize = constvars.DefaultPageSize
	}
	if pageSize > constvars.MaxPageSize {
		pageSize = constvars.MaxPageSize
	}
	return page, pageSize
}

// BuildFindArgsRequest reads paging, ordering, includes and filters from the
// query string. Filters come either as plain column parameters
// (?patient_id=...) or as a JSON object in ?filter=.
func BuildFindArgsRequest(r *http.Request, table queries.Table, allowedIncludes []string) (*requests.FindArgs, error) {
	query := r.URL.Query()
	args := new(requests.FindArgs)
	args.Page, args.PageSize = BuildPaginationRequest(r)

	includes, err := parseIncludes(query.Get(constvars.URLQueryParamInclude), allowedIncludes)
	if err != nil {
		return nil, exceptions.ErrQueryParamValidation(err, constvars.URLQueryParamInclude)
	}
	args.Include = includes

	if orderBy := strings.TrimSpace(query.Get(constvars.URLQueryParamOrderBy)); orderBy != "" {
		if !table.IsSortable(orderBy) {
			return nil, exceptions.ErrQueryParamValidation(fmt.Errorf("cannot order by %q", orderBy), constvars.URLQueryParamOrderBy)
		}
		args.OrderBy = orderBy
	}

	direction := strings.ToLower(strings.TrimSpace(query.Get(constvars.URLQueryParamOrderDirection)))
	switch direction {
	case "":
	case constvars.OrderDirectionAsc, constvars.OrderDirectionDesc:
		args.OrderDirection = direction
	default:
		return nil, exceptions.ErrQueryParamValidation(fmt.Errorf("unknown direction %q", direction), constvars.URLQueryParamOrderDirection)
	}

	where, err := parseFilter(query.Get(constvars.URLQueryParamFilter), table)
	if err != nil {
		return nil, exceptions.ErrQueryParamValidation(err, constvars.URLQueryParamFilter)
	}

	for key, values := range query {
		if reservedQueryParams[key] || len(values) == 0 {
			continue
		}
		if !table.IsFilterable(key) {
			return nil, exceptions.ErrQueryParamValidation(fmt.Errorf("cannot filter by %q", key), key)
		}
		if where == nil {
			where = make(map[string]interface{})
		}
		if len(values) == 1 {
			where[key] = values[0]
		} else {
			where[key] = values
		}
	}
	for column, value := range where {
		if !table.IsUUID(column) {
			continue
		}
		if err := validateUUIDFilter(column, value); err != nil {
			return nil, exceptions.ErrQueryParamValidation(err, column)
		}
	}
	args.Where = where

	return args, nil
}

func validateUUIDFilter(column string, value interface{}) error {
	var values []string
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		values = []string{v}
	case []string:
		values = v
	}
	for _, item := range values {
		if _, err := uuid.Parse(item); err != nil {
			return fmt.Errorf("%s must be a valid UUID, got %q", column, item)
		}
	}
	return nil
}

// BuildIncludeRequest is the detail-view variant of BuildFindArgsRequest.
func BuildIncludeRequest(r *http.Request, allowedIncludes []string) ([]string, error) {
	includes, err := parseIncludes(r.URL.Query().Get(constvars.URLQueryParamInclude), allowedIncludes)
	if err != nil {
		return nil, exceptions.ErrQueryParamValidation(err, constvars.URLQueryParamInclude)
	}
	return includes, nil
}

func parseIncludes(raw string, allowed []string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var includes []string
	for _, part := range strings.Split(raw, ",") {
		relation := strings.TrimSpace(part)
		if relation == "" || slices.Contains(includes, relation) {
			continue
		}
		if !slices.Contains(allowed, relation) {
			return nil, fmt.Errorf("unknown relation %q", relation)
		}
		includes = append(includes, relation)
	}
	slices.Sort(includes)
	return includes, nil
}

func parseFilter(raw string, table queries.Table) (map[string]interface{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	if !gjson.Valid(raw) {
		return nil, errors.New("filter is not valid JSON")
	}

	parsed := gjson.Parse(raw)
	if !parsed.IsObject() {
		return nil, errors.New("filter must be a JSON object")
	}

	where := make(map[string]interface{})
	var filterErr error
	parsed.ForEach(func(key, value gjson.Result) bool {
		column := key.String()
		if !table.IsFilterable(column) {
			filterErr = fmt.Errorf("cannot filter by %q", column)
			return false
		}

		switch {
		case value.Type == gjson.Null:
			where[column] = nil
		case value.IsArray():
			values := make([]string, 0)
			for _, item := range value.Array() {
				values = append(values, item.String())
			}
			where[column] = values
		case value.IsObject():
			filterErr = fmt.Errorf("nested filter on %q is not supported", column)
			return false
		default:
			where[column] = value.String()
		}
		return true
	})
	if filterErr != nil {
		return nil, filterErr
	}
	return where, nil
}
