package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
)

const budgetsPath = "budgets"

// BudgetClient implementa o BudgetRepository sobre /budgets.
type BudgetClient struct {
	client *Client
}

// NewBudgetClient cria o cliente de orçamentos.
func NewBudgetClient(c *Client) repository.BudgetRepository {
	return &BudgetClient{client: c}
}

// GetUserBudget busca o orçamento do usuário para o mês/ano. O backend
// responde null quando o período não tem orçamento.
func (b *BudgetClient) GetUserBudget(ctx context.Context, userID int64, month, year int) (*entity.Budget, error) {
	query := url.Values{}
	query.Set("userId", strconv.FormatInt(userID, 10))
	query.Set("month", strconv.Itoa(month))
	query.Set("year", strconv.Itoa(year))

	var budget entity.Budget
	found, err := b.client.do(ctx, request{method: http.MethodGet, path: budgetsPath + "/user", query: query}, &budget)
	if err != nil || !found {
		return nil, err
	}
	return &budget, nil
}

func (b *BudgetClient) CreateBudget(ctx context.Context, input entity.BudgetInput) (*entity.Budget, error) {
	var budget entity.Budget
	if _, err := b.client.do(ctx, request{method: http.MethodPost, path: budgetsPath, body: input}, &budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (b *BudgetClient) UpdateBudget(ctx context.Context, id int64, budget entity.Budget) (*entity.Budget, error) {
	var updated entity.Budget
	path := budgetsPath + "/" + strconv.FormatInt(id, 10)
	if _, err := b.client.do(ctx, request{method: http.MethodPut, path: path, body: budget}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (b *BudgetClient) DeleteBudget(ctx context.Context, id int64) error {
	path := budgetsPath + "/" + strconv.FormatInt(id, 10)
	_, err := b.client.do(ctx, request{method: http.MethodDelete, path: path}, nil)
	return err
}
