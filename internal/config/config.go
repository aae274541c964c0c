package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config interface {
	EnvConfig
	CorsConfig
	LinkedInConfig
	SecurityConfig
	ContentConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetBaseURL() string
	GetLogLevel() string
	GetLogFormat() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	LinkedIn
	Security
	Content
}

// New builds a Config from the process environment only.
func New() Config {
	return Load(viper.New())
}

// Load builds a Config over v. Keys are looked up in flags bound to v, then the
// environment (dots become underscores, so linkedin.client_id reads LINKEDIN_CLIENT_ID),
// then any config file already read into v, then defaults.
func Load(v *viper.Viper) Config {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return mainConfig{
		EnvVars:  EnvVars{v: v},
		Cors:     Cors{v: v},
		LinkedIn: LinkedIn{v: v},
		Security: Security{v: v},
		Content:  Content{v: v},
	}
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("[config ReadFile] %s: %w", path, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(portKey, "8080")
	v.SetDefault(appNameKey, "Profile Optimizer")
	v.SetDefault(envKey, "DEV")
	v.SetDefault(baseURLKey, "http://localhost:8080")
	v.SetDefault(logLevelKey, "info")
	v.SetDefault(logFormatKey, "")

	v.SetDefault(allowedOriginsKey, "http://localhost:3000")

	v.SetDefault(scopesKey, "openid profile email w_member_social")
	v.SetDefault(authURLKey, "https://www.linkedin.com/oauth/v2/authorization")
	v.SetDefault(tokenURLKey, "https://www.linkedin.com/oauth/v2/accessToken")
	v.SetDefault(apiURLKey, "https://api.linkedin.com")
	v.SetDefault(issuerKey, "https://www.linkedin.com/oauth")
	v.SetDefault(verifyIDTokenKey, true)
	v.SetDefault(enrichCallTimeoutKey, "8s")
	v.SetDefault(enrichDeadlineKey, "20s")
	v.SetDefault(profileFallbackKey, true)
	v.SetDefault(authCodeTimeoutKey, "10m")

	v.SetDefault(sessionStoreKey, "memory")
	v.SetDefault(sessionDSNKey, "file:sessions.db")
	v.SetDefault(sessionMaxAgeKey, "8h")

	v.SetDefault(contentLatencyKey, "2s")
	v.SetDefault(contentLatencyJitterKey, "3s")
	v.SetDefault(geminiModelKey, "gemini-2.5-flash")
}

// Validate reports configuration that prevents the service from starting.
func Validate(c Config) error {
	var missing []string
	if c.GetClientID() == "" {
		missing = append(missing, "LINKEDIN_CLIENT_ID")
	}
	if c.GetClientSecret() == "" {
		missing = append(missing, "LINKEDIN_CLIENT_SECRET")
	}
	if c.GetRedirectURI() == "" {
		missing = append(missing, "LINKEDIN_REDIRECT_URI")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	switch c.GetSessionStore() {
	case SessionStoreMemory, SessionStoreSQLite:
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.GetSessionStore())
	}
	return nil
}
