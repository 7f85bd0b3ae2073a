package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
)

const expensesPath = "expenses"

// ExpenseClient implementa o ExpenseRepository sobre /expenses.
type ExpenseClient struct {
	client *Client
}

func NewExpenseClient(c *Client) repository.ExpenseRepository {
	return &ExpenseClient{client: c}
}

func (e *ExpenseClient) FilterExpenses(ctx context.Context, filter entity.ExpenseFilter) ([]entity.Expense, error) {
	expenses := []entity.Expense{}
	if _, err := e.client.do(ctx, request{method: http.MethodGet, path: expensesPath + "/filter", query: filter.Values()}, &expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

func (e *ExpenseClient) CreateExpense(ctx context.Context, expense entity.Expense) (*entity.Expense, error) {
	var created entity.Expense
	if _, err := e.client.do(ctx, request{method: http.MethodPost, path: expensesPath, body: expense}, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *ExpenseClient) UpdateExpense(ctx context.Context, id int64, expense entity.Expense) (*entity.Expense, error) {
	var updated entity.Expense
	path := expensesPath + "/" + strconv.FormatInt(id, 10)
	if _, err := e.client.do(ctx, request{method: http.MethodPut, path: path, body: expense}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *ExpenseClient) DeleteExpense(ctx context.Context, id int64) error {
	path := expensesPath + "/" + strconv.FormatInt(id, 10)
	_, err := e.client.do(ctx, request{method: http.MethodDelete, path: path}, nil)
	return err
}

// CategoryChartData busca os totais por categoria no intervalo do filtro.
func (e *ExpenseClient) CategoryChartData(ctx context.Context, filter entity.DateRangeFilter) ([]entity.CategoryChartData, error) {
	data := []entity.CategoryChartData{}
	if _, err := e.client.do(ctx, request{method: http.MethodGet, path: expensesPath + "/chart-data", query: filter.Values()}, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// DailyOverview busca os totais por dia no intervalo do filtro.
func (e *ExpenseClient) DailyOverview(ctx context.Context, filter entity.DateRangeFilter) ([]entity.DailyExpense, error) {
	days := []entity.DailyExpense{}
	if _, err := e.client.do(ctx, request{method: http.MethodGet, path: expensesPath + "/daily-overview", query: filter.Values()}, &days); err != nil {
		return nil, err
	}
	return days, nil
}
