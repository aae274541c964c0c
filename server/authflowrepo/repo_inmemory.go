package authflowrepo

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrStateNotFound = errors.New("state not found")
	ErrStateExpired  = errors.New("state expired")
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu     sync.RWMutex
	states map[string]AuthFlowState
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]AuthFlowState),
	}
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if authState == nil {
		return errors.New("authState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	r.states[state] = *authState
	return nil
}

// Get retrieves an auth flow state by state parameter
func (r *InMemoryRepo) Get(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, ErrStateNotFound
	}

	r.mu.RLock()
	authState, exists := r.states[state]
	r.mu.RUnlock()

	if !exists {
		return nil, ErrStateNotFound
	}
	if authState.Expired(time.Now()) {
		return nil, ErrStateExpired
	}
	return &authState, nil
}

func (r *InMemoryRepo) Take(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, ErrStateNotFound
	}

	r.mu.Lock()
	authState, exists := r.states[state]
	delete(r.states, state)
	r.mu.Unlock()

	if !exists {
		return nil, ErrStateNotFound
	}
	if authState.Expired(time.Now()) {
		return nil, ErrStateExpired
	}
	return &authState, nil
}

// DeleteExpired removes abandoned login attempts and reports how many were dropped.
func (r *InMemoryRepo) DeleteExpired(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for state, authState := range r.states {
		if authState.Expired(now) {
			delete(r.states, state)
			removed++
		}
	}
	return removed
}

// Len reports the number of pending states.
func (r *InMemoryRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}
