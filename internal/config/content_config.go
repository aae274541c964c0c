package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	contentLatencyKey       = "content.latency"
	contentLatencyJitterKey = "content.latency_jitter"
	templatesFileKey        = "content.templates_file"
	geminiAPIKeyKey         = "gemini.api_key"
	geminiModelKey          = "gemini.model"
)

type ContentConfig interface {
	GetContentLatency() time.Duration
	GetContentLatencyJitter() time.Duration
	GetTemplatesFile() string
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

type Content struct {
	v *viper.Viper
}

var _ ContentConfig = Content{}

// GetContentLatency is the simulated generation delay.
func (c Content) GetContentLatency() time.Duration {
	return c.v.GetDuration(contentLatencyKey)
}

func (c Content) GetContentLatencyJitter() time.Duration {
	return c.v.GetDuration(contentLatencyJitterKey)
}

func (c Content) GetTemplatesFile() string {
	return c.v.GetString(templatesFileKey)
}

func (c Content) GetGeminiAPIKey() string {
	return c.v.GetString(geminiAPIKeyKey)
}

func (c Content) GetGeminiModel() string {
	return c.v.GetString(geminiModelKey)
}
