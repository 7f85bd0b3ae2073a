package repository

import "github.com/diillson/finance-tracker-go/internal/domain/entity"

// SessionRepository persists the logged-in identity between runs.
type SessionRepository interface {
	// Load returns nil, nil when no complete identity is stored.
	Load() (*entity.Session, error)
	Save(session entity.Session) error
	Clear() error
}
