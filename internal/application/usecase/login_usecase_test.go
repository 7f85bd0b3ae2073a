package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/application/usecase"
	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/shared/types"
	"github.com/diillson/finance-tracker-go/internal/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestoreSession(t *testing.T) {
	tests := []struct {
		name   string
		stored *entity.Session
		want   usecase.LoginState
	}{
		{name: "nothing stored", stored: nil, want: usecase.StateAnonymous},
		{name: "email missing", stored: &entity.Session{UserID: "1"}, want: usecase.StateAnonymous},
		{name: "complete", stored: &testSession, want: usecase.StateAuthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := test.NewBackend()
			uc := usecase.NewLoginUseCase(newData(backend), test.NewSessionStore(tt.stored))

			ok, err := uc.Restore()
			require.NoError(t, err)
			assert.Equal(t, tt.want == usecase.StateAuthenticated, ok)
			assert.Equal(t, tt.want, uc.State())
			assert.Equal(t, 0, backend.Calls("FindByEmail"))
		})
	}
}

func TestLoginPersistsSession(t *testing.T) {
	backend := test.NewBackend()
	store := test.NewSessionStore(nil)
	uc := usecase.NewLoginUseCase(newData(backend), store)

	session, err := uc.Login(context.Background(), "  newuser@example.com ")
	require.NoError(t, err)
	assert.Equal(t, entity.Session{UserID: "101", Email: "newuser@example.com"}, *session)
	assert.Equal(t, usecase.StateAuthenticated, uc.State())
	assert.Equal(t, session, uc.Session())
	assert.Equal(t, 1, store.Saves)
	assert.Equal(t, *session, *store.Stored())
}

func TestLoginRequiresEmail(t *testing.T) {
	backend := test.NewBackend()
	uc := usecase.NewLoginUseCase(newData(backend), test.NewSessionStore(nil))

	_, err := uc.Login(context.Background(), "   ")
	assert.ErrorIs(t, err, types.ErrEmailRequired)
	assert.Equal(t, usecase.StateAnonymous, uc.State())
	assert.Equal(t, 0, backend.Calls("FindByEmail"))
}

func TestLoginFailureKeepsAnonymous(t *testing.T) {
	backend := test.NewBackend()
	backend.Fail("FindByEmail", test.ServerError())
	store := test.NewSessionStore(nil)
	uc := usecase.NewLoginUseCase(newData(backend), store)

	_, err := uc.Login(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, types.ErrLoginFailed)
	assert.Equal(t, usecase.StateAnonymous, uc.State())
	assert.Equal(t, usecase.LoginFailedMessage, uc.ErrorMessage())
	assert.Nil(t, uc.Session())
	assert.Nil(t, store.Stored())
}

func TestLoginSaveFailure(t *testing.T) {
	backend := test.NewBackend()
	store := test.NewSessionStore(nil)
	store.SaveErr = errors.New("disk full")
	uc := usecase.NewLoginUseCase(newData(backend), store)

	_, err := uc.Login(context.Background(), "test@example.com")
	assert.ErrorIs(t, err, types.ErrLoginFailed)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, usecase.StateAnonymous, uc.State())
}

func TestLogoutClearsSessionAndCache(t *testing.T) {
	backend := test.NewBackend(test.DefaultCategories()...)
	data := newData(backend)
	store := test.NewSessionStore(&testSession)
	uc := usecase.NewLoginUseCase(data, store)
	ctx := context.Background()

	_, err := uc.Restore()
	require.NoError(t, err)
	_, err = data.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Cache().Len())

	require.NoError(t, uc.Logout())
	assert.Equal(t, usecase.StateAnonymous, uc.State())
	assert.Nil(t, store.Stored())
	assert.Zero(t, data.Cache().Len())
}
