package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	portKey      = "port"
	appNameKey   = "app_name"
	envKey       = "env"
	baseURLKey   = "base_url"
	logLevelKey  = "log_level"
	logFormatKey = "log_format"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.v.GetString(portKey)
	if port != "" && !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameKey)
}

func (e EnvVars) GetEnv() string {
	env := strings.ToUpper(e.v.GetString(envKey))
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBaseURL returns the public base URL of this service (e.g., "https://optimizer.example.com")
func (e EnvVars) GetBaseURL() string {
	return strings.TrimRight(e.v.GetString(baseURLKey), "/")
}

func (e EnvVars) GetLogLevel() string {
	return e.v.GetString(logLevelKey)
}

// GetLogFormat returns "json" or "console". Empty selects console in DEV and json elsewhere.
func (e EnvVars) GetLogFormat() string {
	return e.v.GetString(logFormatKey)
}
