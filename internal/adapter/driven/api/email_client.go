package api

import (
	"context"
	"net/http"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
)

// EmailClient implementa o EmailRepository sobre /emails.
type EmailClient struct {
	client *Client
}

func NewEmailClient(c *Client) repository.EmailRepository {
	return &EmailClient{client: c}
}

// SendReport pede ao backend o envio do relatório mensal e devolve a
// confirmação textual.
func (e *EmailClient) SendReport(ctx context.Context, req entity.EmailRequest) (string, error) {
	var confirmation string
	if _, err := e.client.do(ctx, request{method: http.MethodPost, path: "emails/send-report", body: req}, &confirmation); err != nil {
		return "", err
	}
	return confirmation, nil
}
