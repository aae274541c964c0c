package authflowrepo

import "time"

// DefaultTTL bounds how long a login attempt may take between redirect and callback.
const DefaultTTL = 10 * time.Minute

// AuthFlowState is what the server remembers about a login between issuing the
// state parameter and receiving the provider callback.
type AuthFlowState struct {
	RedirectURI string // redirect_uri sent to the provider, repeated in the token exchange
	ReturnURL   string // optional frontend URL to send the browser to afterwards
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (a *AuthFlowState) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

type Repo interface {
	Upsert(state string, authState *AuthFlowState) error
	Get(state string) (*AuthFlowState, error)
	// Take returns and removes the state so it can only be used once.
	Take(state string) (*AuthFlowState, error)
	DeleteExpired(now time.Time) int
}
