package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	return repo.(*FileRepository), path
}

func TestSaveAndLoad(t *testing.T) {
	repo, path := newRepo(t)

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, repo.Save(entity.Session{UserID: "42", Email: "test@example.com"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "userId: \"42\"")
	assert.Contains(t, string(data), "userEmail: test@example.com")

	s, err = repo.Load()
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, entity.Session{UserID: "42", Email: "test@example.com"}, *s)
}

func TestLoadIncompleteSession(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("userId: \"42\"\n"), 0o600))

	s, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestLoadCorruptSession(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("userId: [\n"), 0o600))

	_, err := repo.Load()
	assert.ErrorContains(t, err, "error parsing session file")
}

func TestClear(t *testing.T) {
	repo, path := newRepo(t)
	require.NoError(t, repo.Clear(), "clearing without a file is fine")

	require.NoError(t, repo.Save(entity.Session{UserID: "1", Email: "a@b.c"}))
	require.NoError(t, repo.Clear())
	assert.NoFileExists(t, path)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "session.yaml", filepath.Base(path))
	assert.Equal(t, "finance-tracker", filepath.Base(filepath.Dir(path)))
}
