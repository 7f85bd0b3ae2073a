package repository

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

// BudgetRepository defines the budget endpoints of the backend.
type BudgetRepository interface {
	// GetUserBudget returns nil, nil when the period has no budget.
	GetUserBudget(ctx context.Context, userID int64, month, year int) (*entity.Budget, error)
	CreateBudget(ctx context.Context, input entity.BudgetInput) (*entity.Budget, error)
	UpdateBudget(ctx context.Context, id int64, budget entity.Budget) (*entity.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error
}
