package query

import "context"

// Callbacks are per-call hooks run after a mutation settles.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnError   func(error)
}

// MutationOptions lists the keys a mutation invalidates when it succeeds,
// plus the caller's callbacks.
type MutationOptions[T any] struct {
	Invalidates []Key
	Callbacks[T]
}

// Mutate runs fn once, without retries. On success every key in
// Invalidates is invalidated (active queries refetch before Mutate returns)
// and then OnSuccess runs. On failure the cache is untouched and OnError runs.
func Mutate[T any](ctx context.Context, c *Cache, fn func(ctx context.Context) (T, error), opts MutationOptions[T]) (T, error) {
	result, err := fn(ctx)
	if err != nil {
		if opts.OnError != nil {
			opts.OnError(err)
		}
		return result, err
	}

	for _, key := range opts.Invalidates {
		c.Invalidate(ctx, key)
	}
	if opts.OnSuccess != nil {
		opts.OnSuccess(result)
	}
	return result, nil
}
