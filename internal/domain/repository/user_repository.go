package repository

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

// UserRepository defines the login endpoints of the backend.
type UserRepository interface {
	// FindByEmail returns nil, nil when no user has that email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateWithEmail(ctx context.Context, email string) (*entity.User, error)
}
