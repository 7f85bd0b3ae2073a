package usecase

import (
	"context"
	"fmt"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

const (
	NoChartDataMessage       = "No data available to display the chart."
	NoCategoryExpenseMessage = "No expenses available for this category."
)

// ChartUseCase drives the category chart and its drill-down.
type ChartUseCase struct {
	alerts
	filter   *query.Filterable[entity.DateRangeFilter, []entity.CategoryChartData]
	selected *entity.CategoryChartData
}

// NewChartUseCase creates the chart view of userID with an empty date range.
func NewChartUseCase(data *DataUseCase, userID int64) *ChartUseCase {
	return &ChartUseCase{
		filter: query.NewFilterable(data.Cache(),
			func() entity.DateRangeFilter { return entity.DateRangeFilter{UserID: userID} },
			ChartKey,
			data.expenses.CategoryChartData,
		),
	}
}

func (uc *ChartUseCase) Filter() *query.Filterable[entity.DateRangeFilter, []entity.CategoryChartData] {
	return uc.filter
}

func (uc *ChartUseCase) ApplyFilters() bool {
	uc.selected = nil
	return uc.filter.Apply()
}

func (uc *ChartUseCase) ClearFilters() {
	uc.selected = nil
	uc.filter.Clear()
}

// Data returns the aggregate of the applied range.
func (uc *ChartUseCase) Data(ctx context.Context) ([]entity.CategoryChartData, error) {
	rows, err := uc.filter.Result(ctx)
	if err != nil {
		uc.show(AlertError, errorMessage(err))
	}
	return rows, err
}

// Select opens the detail of the named category. The detail comes from the
// aggregate already loaded for the applied range.
func (uc *ChartUseCase) Select(ctx context.Context, name string) (*entity.CategoryChartData, error) {
	rows, err := uc.Data(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row.CategoryName == name {
			selected := row
			uc.selected = &selected
			return uc.selected, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownCategory, name)
}

// Selected returns the open category, or nil.
func (uc *ChartUseCase) Selected() *entity.CategoryChartData { return uc.selected }

// CloseDetail closes the drill-down.
func (uc *ChartUseCase) CloseDetail() { uc.selected = nil }

// CategoryShares converts the aggregate into chart slices sized by expense count.
func CategoryShares(rows []entity.CategoryChartData) []types.CategoryShare {
	shares := make([]types.CategoryShare, 0, len(rows))
	for _, row := range rows {
		shares = append(shares, types.CategoryShare{
			Name:  row.CategoryName,
			Count: row.ExpenseCount,
			Total: row.TotalAmount.InexactFloat64(),
		})
	}
	return shares
}

// ExpenseCountLabel formats a count as "1 expense" or "N expenses".
func ExpenseCountLabel(n int) string {
	if n > 1 {
		return fmt.Sprintf("%d expenses", n)
	}
	return fmt.Sprintf("%d expense", n)
}
