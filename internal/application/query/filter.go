package query

import (
	"context"
	"fmt"
)

// FieldSetter is implemented by filters that accept raw per-field edits.
type FieldSetter interface {
	Set(field, value string) error
}

// Filterable holds the draft filter the user is editing and the applied
// filter that actually drives the query. Edits never fetch; Apply copies the
// draft over the applied filter, which changes the query key.
//
// Filter values are treated as immutable: replace pointer fields instead of
// writing through them, since draft and applied share them after Apply.
type Filterable[F any, T any] struct {
	cache    *Cache
	defaults func() F
	key      func(F) Key
	fetch    func(ctx context.Context, filter F) (T, error)

	draft   F
	applied F
}

// NewFilterable starts with both draft and applied set to defaults(). fetch
// runs inside the cache and must call the backend directly.
func NewFilterable[F any, T any](c *Cache, defaults func() F, key func(F) Key, fetch func(ctx context.Context, filter F) (T, error)) *Filterable[F, T] {
	return &Filterable[F, T]{
		cache:    c,
		defaults: defaults,
		key:      key,
		fetch:    fetch,
		draft:    defaults(),
		applied:  defaults(),
	}
}

// Draft returns the filter being edited.
func (f *Filterable[F, T]) Draft() F { return f.draft }

// Applied returns the filter the query runs with.
func (f *Filterable[F, T]) Applied() F { return f.applied }

// SetDraft replaces the draft.
func (f *Filterable[F, T]) SetDraft(draft F) { f.draft = draft }

// Edit changes the draft in place.
func (f *Filterable[F, T]) Edit(fn func(draft *F)) { fn(&f.draft) }

// Set updates a single draft field from raw input.
func (f *Filterable[F, T]) Set(field, value string) error {
	setter, ok := any(&f.draft).(FieldSetter)
	if !ok {
		return fmt.Errorf("filter %T does not support field edits", f.draft)
	}
	return setter.Set(field, value)
}

// Apply copies the draft over the applied filter and reports whether the
// query key changed.
func (f *Filterable[F, T]) Apply() bool {
	changed := !f.key(f.draft).Equal(f.key(f.applied))
	f.applied = f.draft
	return changed
}

// Pending reports whether the draft differs from the applied filter.
func (f *Filterable[F, T]) Pending() bool {
	return !f.key(f.draft).Equal(f.key(f.applied))
}

// Clear resets both draft and applied to the defaults.
func (f *Filterable[F, T]) Clear() {
	f.draft = f.defaults()
	f.applied = f.defaults()
}

// Key is the query key of the applied filter.
func (f *Filterable[F, T]) Key() Key { return f.key(f.applied) }

// Result returns the query result for the applied filter.
func (f *Filterable[F, T]) Result(ctx context.Context) (T, error) {
	applied := f.applied
	return Get(ctx, f.cache, f.key(applied), func(ctx context.Context) (T, error) {
		return f.fetch(ctx, applied)
	})
}
