package sessions

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/rs/zerolog/log"
)

const DefaultMaxAge = 8 * time.Hour

// Manager ties a Store to the session cookie.
type Manager struct {
	store  Store
	codec  *CookieCodec
	maxAge time.Duration
}

func NewManager(store Store, codec *CookieCodec, maxAge time.Duration) *Manager {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Manager{store: store, codec: codec, maxAge: maxAge}
}

func (m *Manager) Store() Store {
	return m.store
}

// Start stores s under a new id and writes the session cookie. Sessions never outlive
// the access token they hold.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, s Session) (Session, error) {
	now := NowTimeFunc()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.maxAge)
	if !s.TokenExpiry.IsZero() && s.TokenExpiry.Before(s.ExpiresAt) {
		s.ExpiresAt = s.TokenExpiry
	}

	if err := m.store.Set(ctx, s); err != nil {
		return Session{}, err
	}
	cookie, err := m.codec.Cookie(s.ID, s.ExpiresAt)
	if err != nil {
		return Session{}, err
	}
	http.SetCookie(w, cookie)
	return s, nil
}

// Load returns the session named by the request cookie.
func (m *Manager) Load(ctx context.Context, r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.codec.Name())
	if err != nil {
		return Session{}, apperrors.ErrSessionNotFound
	}
	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		return Session{}, err
	}
	return m.store.Get(ctx, id)
}

// End clears the request's session, if any, and expires the cookie.
func (m *Manager) End(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, m.codec.Expired())

	cookie, err := r.Cookie(m.codec.Name())
	if err != nil {
		return nil
	}
	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("Ignoring undecodable session cookie")
		return nil
	}
	return m.store.Clear(ctx, id)
}

// Sweep removes expired sessions from the store.
func (m *Manager) Sweep(ctx context.Context) {
	removed, err := m.store.DeleteExpired(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to sweep expired sessions")
		return
	}
	if removed > 0 {
		log.Debug().Int("removed", removed).Msg("Swept expired sessions")
	}
}
