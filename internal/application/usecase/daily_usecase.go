package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

const NoDailyExpensesMessage = "No daily expenses found for the selected range."

// DailyUseCase drives the daily overview. Nothing is shown until the user
// asks for the overview.
type DailyUseCase struct {
	alerts
	filter   *query.Filterable[entity.DateRangeFilter, []entity.DailyExpense]
	shown    bool
	selected *entity.DailyExpense
}

// NewDailyUseCase creates the daily view of userID.
func NewDailyUseCase(data *DataUseCase, userID int64) *DailyUseCase {
	return &DailyUseCase{
		filter: query.NewFilterable(data.Cache(),
			func() entity.DateRangeFilter { return entity.DateRangeFilter{UserID: userID} },
			DailyKey,
			data.expenses.DailyOverview,
		),
	}
}

func (uc *DailyUseCase) Filter() *query.Filterable[entity.DateRangeFilter, []entity.DailyExpense] {
	return uc.filter
}

// Shown reports whether the table is visible.
func (uc *DailyUseCase) Shown() bool { return uc.shown }

// Show applies the draft range, makes the table visible and returns its rows.
func (uc *DailyUseCase) Show(ctx context.Context) ([]entity.DailyExpense, error) {
	uc.filter.Apply()
	uc.shown = true
	uc.selected = nil
	return uc.Days(ctx)
}

// Days returns the rows of the applied range, or nil while hidden.
func (uc *DailyUseCase) Days(ctx context.Context) ([]entity.DailyExpense, error) {
	if !uc.shown {
		return nil, nil
	}
	rows, err := uc.filter.Result(ctx)
	if err != nil {
		uc.show(AlertError, errorMessage(err))
	}
	return rows, err
}

// Hide resets the range and hides the table.
func (uc *DailyUseCase) Hide() {
	uc.filter.Clear()
	uc.shown = false
	uc.selected = nil
}

// SelectDay opens the details of one day of the visible table.
func (uc *DailyUseCase) SelectDay(ctx context.Context, day string) (*entity.DailyExpense, error) {
	t, err := entity.ParseDay(day)
	if err != nil {
		return nil, err
	}
	want := t.Format(entity.DateLayout)

	rows, err := uc.Days(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if entity.DayOf(row.Date) == want {
			selected := row
			uc.selected = &selected
			return uc.selected, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", types.ErrUnknownDay, want)
}

// Selected returns the open day, or nil.
func (uc *DailyUseCase) Selected() *entity.DailyExpense { return uc.selected }

// DailyTotals converts rows into bar chart values.
func DailyTotals(rows []entity.DailyExpense) []types.DailyTotal {
	totals := make([]types.DailyTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, types.DailyTotal{
			Date:  entity.DayOf(row.Date),
			Total: row.TotalAmount.InexactFloat64(),
		})
	}
	return totals
}

// FormatDetail renders one detail line, e.g. "Lunch: $12.50 (Food)".
func FormatDetail(d entity.ExpenseDetail) string {
	return fmt.Sprintf("%s: %s (%s)", d.Title, entity.FormatMoney(d.Amount), d.CategoryName)
}

// FormatDetails renders every detail of a day, one per line.
func FormatDetails(day entity.DailyExpense) string {
	lines := make([]string, 0, len(day.ExpenseDetails))
	for _, d := range day.ExpenseDetails {
		lines = append(lines, FormatDetail(d))
	}
	return strings.Join(lines, "\n")
}
