package repository

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

// ExpenseRepository defines the expense endpoints of the backend, including
// the aggregated chart and daily views.
type ExpenseRepository interface {
	FilterExpenses(ctx context.Context, filter entity.ExpenseFilter) ([]entity.Expense, error)
	CreateExpense(ctx context.Context, expense entity.Expense) (*entity.Expense, error)
	UpdateExpense(ctx context.Context, id int64, expense entity.Expense) (*entity.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error

	CategoryChartData(ctx context.Context, filter entity.DateRangeFilter) ([]entity.CategoryChartData, error)
	DailyOverview(ctx context.Context, filter entity.DateRangeFilter) ([]entity.DailyExpense, error)
}
