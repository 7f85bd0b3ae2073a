package repository

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]entity.Category, error)
}
