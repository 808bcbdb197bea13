package querycache

import "context"

// Related loads the records referenced by ids and indexes them by id.
func Related[T any](ctx context.Context, client *QueryClient[T], ids []string, id func(*T) string) (map[string]*T, error) {
	records, err := client.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*T, len(records))
	for i := range records {
		index[id(&records[i])] = &records[i]
	}
	return index, nil
}
