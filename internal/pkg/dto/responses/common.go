package responses

// FindManyWithCount is the paired page and total returned by list reads.
type FindManyWithCount[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

type PaginatedResult[T any] struct {
	Data       []T
	Pagination *Pagination
}
