package querycache

import "context"

// Fetch is the typed convenience over Cache.Query for the endpoint wrappers,
// which all return concrete types.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetcher func(ctx context.Context) (T, error)) (T, uint64, error) {
	v, version, err := c.Query(ctx, key, func(ctx context.Context) (any, error) {
		return fetcher(ctx)
	})
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v.(T), version, nil
}

// Append returns a mutator that appends item to a cached slice of T.
// Used for optimistic inserts after a successful create.
func Append[T any](item T) func(any) any {
	return func(data any) any {
		list, ok := data.([]T)
		if !ok {
			return data
		}
		out := make([]T, 0, len(list)+1)
		out = append(out, list...)
		return append(out, item)
	}
}
