package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

const usersLoginPath = "users/login"

// UserClient implementa o UserRepository sobre /users.
type UserClient struct {
	client *Client
}

func NewUserClient(c *Client) repository.UserRepository {
	return &UserClient{client: c}
}

// FindByEmail procura o usuário pelo e-mail. Um 404 é um resultado válido
// ("usuário não existe") e retorna nil sem erro.
func (u *UserClient) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := url.Values{}
	query.Set("email", email)

	var user entity.User
	found, err := u.client.do(ctx, request{method: http.MethodGet, path: usersLoginPath, query: query}, &user)
	if err != nil {
		if types.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &user, nil
}

// CreateWithEmail cria o usuário; o corpo é o e-mail em texto puro.
func (u *UserClient) CreateWithEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if _, err := u.client.do(ctx, request{method: http.MethodPost, path: usersLoginPath, textBody: &email}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
