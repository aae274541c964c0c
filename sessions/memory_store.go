package sessions

import (
	"context"
	"sync"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
)

// MemoryStore is a thread-safe in-memory Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, apperrors.ErrSessionNotFound
	}

	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return Session{}, apperrors.ErrSessionNotFound
	}

	if s.Expired(NowTimeFunc()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return Session{}, apperrors.ErrSessionExpired
	}
	return s, nil
}

func (m *MemoryStore) Set(_ context.Context, s Session) error {
	if s.ID == "" {
		return apperrors.New("session id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

// Clear removes a session. Clearing an unknown id is not an error.
func (m *MemoryStore) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) (int, error) {
	now := NowTimeFunc()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (m *MemoryStore) Close() error {
	return nil
}
