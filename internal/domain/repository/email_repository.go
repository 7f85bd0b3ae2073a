package repository

import (
	"context"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

type EmailRepository interface {
	SendReport(ctx context.Context, request entity.EmailRequest) (string, error)
}
