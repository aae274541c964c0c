package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	sessionSecretKey = "session.secret"
	sessionStoreKey  = "session.store"
	sessionDSNKey    = "session.dsn"
	sessionMaxAgeKey = "session.max_age"

	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

type SecurityConfig interface {
	GetSessionSecret() string
	GetSessionStore() string
	GetSessionDSN() string
	GetMaxSessionAge() time.Duration
}

type Security struct {
	v *viper.Viper
}

var _ SecurityConfig = Security{}

// GetSessionSecret signs session cookies and seals stored tokens. When empty a
// random per-process secret is used.
func (s Security) GetSessionSecret() string {
	return s.v.GetString(sessionSecretKey)
}

func (s Security) GetSessionStore() string {
	return s.v.GetString(sessionStoreKey)
}

func (s Security) GetSessionDSN() string {
	return s.v.GetString(sessionDSNKey)
}

func (s Security) GetMaxSessionAge() time.Duration {
	return s.v.GetDuration(sessionMaxAgeKey)
}
