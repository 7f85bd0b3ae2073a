package usecase_test

import (
	"context"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/diillson/finance-tracker-go/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChartUseCase(t *testing.T) (*usecase.ChartUseCase, *test.Backend) {
	t.Helper()
	backend := test.NewBackend(test.DefaultCategories()...)
	seedExpenses(backend)
	return usecase.NewChartUseCase(newData(backend), userID), backend
}

func TestChartAggregatesByCategory(t *testing.T) {
	uc, _ := newChartUseCase(t)

	rows, err := uc.Data(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	shares := usecase.CategoryShares(rows)
	assert.Equal(t, []types.CategoryShare{
		{Name: "Food", Count: 1, Total: 50.75},
		{Name: "Housing", Count: 1, Total: 1200},
	}, shares)
}

func TestSelectCategoryUsesLoadedData(t *testing.T) {
	uc, backend := newChartUseCase(t)
	ctx := context.Background()

	selected, err := uc.Select(ctx, "Housing")
	require.NoError(t, err)
	assert.Equal(t, 1, selected.ExpenseCount)
	require.Len(t, selected.Expenses, 1)
	assert.Equal(t, "Rent", selected.Expenses[0].Title)
	assert.Equal(t, selected, uc.Selected())

	_, err = uc.Select(ctx, "Travel")
	assert.ErrorIs(t, err, types.ErrUnknownCategory)
	assert.Equal(t, 1, backend.Calls("CategoryChartData"))

	uc.CloseDetail()
	assert.Nil(t, uc.Selected())
}

func TestChartRangeResetsSelection(t *testing.T) {
	uc, _ := newChartUseCase(t)
	ctx := context.Background()

	_, err := uc.Select(ctx, "Food")
	require.NoError(t, err)

	require.NoError(t, uc.Filter().Set("endDate", "2025-05-01"))
	assert.True(t, uc.ApplyFilters())
	assert.Nil(t, uc.Selected())

	rows, err := uc.Data(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Housing", rows[0].CategoryName)

	uc.ClearFilters()
	rows, err = uc.Data(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestChartLoadFailureShowsAlert(t *testing.T) {
	uc, backend := newChartUseCase(t)
	backend.Fail("CategoryChartData", test.BadRequest("Invalid date range"))

	_, err := uc.Data(context.Background())
	require.Error(t, err)
	assert.Equal(t, usecase.AlertError, uc.Alert().Kind)
	assert.Equal(t, "Invalid date range", uc.Alert().Message)
}

func TestExpenseCountLabel(t *testing.T) {
	assert.Equal(t, "0 expense", usecase.ExpenseCountLabel(0))
	assert.Equal(t, "1 expense", usecase.ExpenseCountLabel(1))
	assert.Equal(t, "3 expenses", usecase.ExpenseCountLabel(3))
}
