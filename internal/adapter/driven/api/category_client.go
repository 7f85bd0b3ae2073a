package api

import (
	"context"
	"net/http"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
)

// CategoryClient implementa o CategoryRepository sobre /categories.
type CategoryClient struct {
	client *Client
}

func NewCategoryClient(c *Client) repository.CategoryRepository {
	return &CategoryClient{client: c}
}

func (cc *CategoryClient) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories := []entity.Category{}
	if _, err := cc.client.do(ctx, request{method: http.MethodGet, path: "categories"}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
