package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/diillson/finance-tracker-go/internal/application/query"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
)

// LoginFailedMessage is shown for every login failure, whatever the cause.
const LoginFailedMessage = "Failed to log in. Please try again."

// LoginState is the authentication state of the client.
type LoginState int

const (
	StateAnonymous LoginState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s LoginState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// LoginUseCase handles the e-mail login flow and the persisted session.
type LoginUseCase struct {
	data     *DataUseCase
	sessions repository.SessionRepository

	state        LoginState
	session      *entity.Session
	errorMessage string
}

// NewLoginUseCase creates a new login use case.
func NewLoginUseCase(data *DataUseCase, sessions repository.SessionRepository) *LoginUseCase {
	return &LoginUseCase{data: data, sessions: sessions}
}

// State returns the current authentication state.
func (uc *LoginUseCase) State() LoginState { return uc.state }

// Session returns the logged-in identity, or nil.
func (uc *LoginUseCase) Session() *entity.Session { return uc.session }

// ErrorMessage returns the message of the last failed login.
func (uc *LoginUseCase) ErrorMessage() string { return uc.errorMessage }

// Restore reads a previously persisted session. No backend call is made.
func (uc *LoginUseCase) Restore() (bool, error) {
	session, err := uc.sessions.Load()
	if err != nil {
		return false, fmt.Errorf("error loading session: %w", err)
	}
	if session == nil || !session.Valid() {
		uc.state = StateAnonymous
		uc.session = nil
		return false, nil
	}
	uc.state = StateAuthenticated
	uc.session = session
	return true, nil
}

// Login finds or creates the user with email and persists the session.
// On failure the state goes back to anonymous and nothing is persisted.
func (uc *LoginUseCase) Login(ctx context.Context, email string) (*entity.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, types.ErrEmailRequired
	}

	uc.state = StateAuthenticating
	uc.errorMessage = ""

	user, err := uc.data.Login(ctx, email, query.Callbacks[*entity.User]{
		OnError: func(error) { uc.reset() },
	})
	if err != nil {
		return nil, loginError(err)
	}

	session := entity.NewSession(*user)
	if err := uc.sessions.Save(session); err != nil {
		uc.reset()
		return nil, loginError(err)
	}

	uc.state = StateAuthenticated
	uc.session = &session
	return &session, nil
}

// reset returns to anonymous with the fixed failure message.
func (uc *LoginUseCase) reset() {
	uc.state = StateAnonymous
	uc.session = nil
	uc.errorMessage = LoginFailedMessage
}

func loginError(err error) error {
	return fmt.Errorf("%w: %w", types.ErrLoginFailed, err)
}

// Logout removes the persisted session and drops every cached query.
func (uc *LoginUseCase) Logout() error {
	if err := uc.sessions.Clear(); err != nil {
		return fmt.Errorf("error clearing session: %w", err)
	}
	uc.data.Cache().Clear()
	uc.state = StateAnonymous
	uc.session = nil
	return nil
}
