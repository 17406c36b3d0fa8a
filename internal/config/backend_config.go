package config

import (
	"fmt"
	"github.com/spf13/viper"
	"net/url"
	"time"
)

type BackendConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	MaxRequestsPerSecond float32       `mapstructure:"max_requests_per_second"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

func (config BackendConfig) validate() error {

	if config.BaseURL == "" {
		return fmt.Errorf("missing variable: base_url")
	}

	parsed, err := url.Parse(config.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("base_url must be an absolute url, got %q", config.BaseURL)
	}

	if config.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max_requests_per_second must be non-negative")
	}

	if config.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be non-negative")
	}

	return nil
}

func (config BackendConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"backend.base_url":                "BACKEND_URL",
		"backend.max_requests_per_second": "BACKEND_MAX_REQUESTS_PER_SECOND",
		"backend.cache_ttl":               "BACKEND_CACHE_TTL",
	})
}
