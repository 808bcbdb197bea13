package requests

import "slices"

// FindArgs is the argument set shared by every read operation. It is part of
// the cache key, so every field must serialize deterministically.
type FindArgs struct {
	Where          map[string]interface{} `json:"where,omitempty"`
	Include        []string               `json:"include,omitempty"`
	OrderBy        string                 `json:"order_by,omitempty"`
	OrderDirection string                 `json:"order_direction,omitempty"`
	Page           int                    `json:"page,omitempty"`
	PageSize       int                    `json:"page_size,omitempty"`
}

func (a *FindArgs) Offset() int {
	if a == nil || a.Page <= 1 {
		return 0
	}
	return (a.Page - 1) * a.PageSize
}

func (a *FindArgs) HasInclude(relation string) bool {
	if a == nil {
		return false
	}
	return slices.Contains(a.Include, relation)
}

// Clone returns a copy whose Where map can be modified without touching a.
func (a *FindArgs) Clone() *FindArgs {
	if a == nil {
		return &FindArgs{}
	}
	clone := *a
	if a.Where != nil {
		clone.Where = make(map[string]interface{}, len(a.Where))
		for key, value := range a.Where {
			clone.Where[key] = value
		}
	}
	if a.Include != nil {
		clone.Include = slices.Clone(a.Include)
	}
	return &clone
}

// WithoutPaging drops page and page size, used for counts.
func (a *FindArgs) WithoutPaging() *FindArgs {
	clone := a.Clone()
	clone.Page = 0
	clone.PageSize = 0
	clone.OrderBy = ""
	clone.OrderDirection = ""
	clone.Include = nil
	return clone
}

func (a *FindArgs) WhereID(id string) *FindArgs {
	clone := a.Clone()
	if clone.Where == nil {
		clone.Where = make(map[string]interface{}, 1)
	}
	clone.Where["id"] = id
	return clone
}
