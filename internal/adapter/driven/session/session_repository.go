package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
	"github.com/diillson/finance-tracker-go/internal/domain/repository"
	"gopkg.in/yaml.v3"
)

const (
	appDir   = "finance-tracker"
	fileName = "session.yaml"
)

// FileRepository guarda a sessão em um arquivo YAML.
type FileRepository struct {
	path string
}

// NewFileRepository cria o repositório; path vazio usa DefaultPath.
func NewFileRepository(path string) (repository.SessionRepository, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}
	return &FileRepository{path: path}, nil
}

// DefaultPath retorna <user config dir>/finance-tracker/session.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not resolve user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Path returns the session file location.
func (r *FileRepository) Path() string { return r.path }

// Load lê a sessão. Arquivo ausente ou incompleto retorna nil, nil.
func (r *FileRepository) Load() (*entity.Session, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading session file: %w", err)
	}

	var s entity.Session
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error parsing session file %s: %w", r.path, err)
	}
	if !s.Valid() {
		return nil, nil
	}
	return &s, nil
}

func (r *FileRepository) Save(s entity.Session) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("error encoding session: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("error writing session file: %w", err)
	}
	return nil
}

func (r *FileRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error removing session file: %w", err)
	}
	return nil
}
