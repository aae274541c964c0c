package sessions

import (
	"context"
	"time"

	"github.com/jrsteele09/go-profile-optimizer/profile"
)

// Session is the server-side record behind a session cookie. It holds the member's
// LinkedIn access token and the profile returned when the account was connected.
type Session struct {
	ID          string           // Unique session identifier (UUID)
	MemberID    string           // LinkedIn member id, empty for demo profiles
	AccessToken string           // Bearer token, sealed by stores that persist it
	Scope       string           // Scopes granted to AccessToken
	TokenExpiry time.Time        // Zero when the provider sent no expiry
	Profile     *profile.Profile // Normalized profile at connect time
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session has passed its expiry at now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Store keeps sessions keyed by id. Get returns ErrSessionNotFound for unknown ids
// and ErrSessionExpired (removing the record) for expired ones.
type Store interface {
	Get(ctx context.Context, id string) (Session, error)
	Set(ctx context.Context, s Session) error
	Clear(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int, error)
	Close() error
}

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now
