package config

import (
	"fmt"
	"github.com/spf13/viper"
	"strings"
	"time"
)

type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	PublicURL      string        `mapstructure:"public_url"`
	SessionSecret  string        `mapstructure:"session_secret"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	SecureCookies  bool          `mapstructure:"secure_cookies"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

func (config ServerConfig) validate() error {

	var missingFields []string

	if config.Address == "" {
		missingFields = append(missingFields, "address")
	}

	if config.SessionSecret == "" {
		missingFields = append(missingFields, "session_secret")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if len(config.SessionSecret) < 16 {
		return fmt.Errorf("session_secret must be at least 16 characters")
	}

	if config.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}

	return nil
}

func (config ServerConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"server.address":         "SERVER_ADDRESS",
		"server.public_url":      "PUBLIC_URL",
		"server.session_secret":  "SESSION_SECRET",
		"server.session_ttl":     "SESSION_TTL",
		"server.secure_cookies":  "SECURE_COOKIES",
		"server.allowed_origins": "ALLOWED_ORIGINS",
	})
}
