package query_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeFilter struct {
	Start string
	End   string
}

func (f *rangeFilter) Set(field, value string) error {
	switch field {
	case "start":
		f.Start = value
	case "end":
		f.End = value
	default:
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

func newRangeFilterable(c *query.Cache, calls *[]rangeFilter) *query.Filterable[rangeFilter, string] {
	return query.NewFilterable(c,
		func() rangeFilter { return rangeFilter{} },
		func(f rangeFilter) query.Key { return query.NewKey("daily", f.Start, f.End) },
		func(ctx context.Context, f rangeFilter) (string, error) {
			*calls = append(*calls, f)
			return strings.TrimSpace(f.Start + " " + f.End), nil
		},
	)
}

func TestFilterEditsDoNotFetchUntilApplied(t *testing.T) {
	c := query.New(fastOptions())
	var calls []rangeFilter
	f := newRangeFilterable(c, &calls)

	_, err := f.Result(context.Background())
	require.NoError(t, err)
	require.Len(t, calls, 1)

	require.NoError(t, f.Set("start", "2024-01-01"))
	f.Edit(func(d *rangeFilter) { d.End = "2024-01-31" })
	assert.True(t, f.Pending())

	v, err := f.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", v, "result still reflects the applied filter")
	assert.Len(t, calls, 1)

	assert.True(t, f.Apply())
	assert.False(t, f.Pending())
	v, err = f.Result(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 2024-01-31", v)
	assert.Len(t, calls, 2)

	assert.False(t, f.Apply(), "applying an unchanged draft keeps the key")
}

func TestFilterClearResetsBoth(t *testing.T) {
	c := query.New(fastOptions())
	var calls []rangeFilter
	f := newRangeFilterable(c, &calls)

	f.SetDraft(rangeFilter{Start: "2024-01-01"})
	f.Apply()
	f.Clear()

	assert.Equal(t, rangeFilter{}, f.Draft())
	assert.Equal(t, rangeFilter{}, f.Applied())
	assert.Equal(t, query.NewKey("daily", "", ""), f.Key())
}

func TestFilterSetRejectsUnknownField(t *testing.T) {
	c := query.New(fastOptions())
	var calls []rangeFilter
	f := newRangeFilterable(c, &calls)

	assert.Error(t, f.Set("colour", "red"))
}

func TestFilterSetRequiresFieldSetter(t *testing.T) {
	c := query.New(fastOptions())
	f := query.NewFilterable(c,
		func() int { return 0 },
		func(n int) query.Key { return query.NewKey("n", n) },
		func(ctx context.Context, n int) (int, error) { return n, nil },
	)
	assert.Error(t, f.Set("n", "1"))
}

func TestMutateInvalidatesOnSuccessOnly(t *testing.T) {
	c := query.New(fastOptions())
	var calls int32
	key := query.NewKey("expenses", "userId=1")
	_, err := c.Fetch(context.Background(), key, counter("x", &calls))
	require.NoError(t, err)

	var order []string
	_, err = query.Mutate(context.Background(), c,
		func(ctx context.Context) (string, error) { return "", errors.New("rejected") },
		query.MutationOptions[string]{
			Invalidates: []query.Key{query.NewKey("expenses")},
			Callbacks: query.Callbacks[string]{
				OnSuccess: func(string) { order = append(order, "success") },
				OnError:   func(error) { order = append(order, "error") },
			},
		})
	require.Error(t, err)
	snap, _ := c.Peek(key)
	assert.False(t, snap.Stale)

	attempts := 0
	created, err := query.Mutate(context.Background(), c,
		func(ctx context.Context) (string, error) { attempts++; return "created", nil },
		query.MutationOptions[string]{
			Invalidates: []query.Key{query.NewKey("expenses")},
			Callbacks: query.Callbacks[string]{
				OnSuccess: func(v string) {
					s, _ := c.Peek(key)
					assert.True(t, s.Stale, "invalidation happens before OnSuccess")
					order = append(order, "success:"+v)
				},
			},
		})
	require.NoError(t, err)
	assert.Equal(t, "created", created)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, []string{"error", "success:created"}, order)
}

func TestMutateNeverRetries(t *testing.T) {
	c := query.New(fastOptions())
	attempts := 0
	_, err := query.Mutate(context.Background(), c,
		func(ctx context.Context) (int, error) { attempts++; return 0, errors.New("503") },
		query.MutationOptions[int]{})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
