package test

import (
	"sync"

	"github.com/diillson/finance-tracker-go/internal/domain/entity"
)

// SessionStore keeps the session in memory.
type SessionStore struct {
	mu      sync.Mutex
	session *entity.Session
	SaveErr error
	Saves   int
}

// NewSessionStore returns a store holding session, or an empty one when nil.
func NewSessionStore(session *entity.Session) *SessionStore {
	return &SessionStore{session: session}
}

func (s *SessionStore) Load() (*entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil || !s.session.Valid() {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

func (s *SessionStore) Save(session entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves++
	s.session = &session
	return nil
}

func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

// Stored returns the raw stored session.
func (s *SessionStore) Stored() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}
