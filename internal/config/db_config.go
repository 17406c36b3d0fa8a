package config

import (
	"fmt"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString        string `mapstructure:"connection_string"`
	SessionsCleanupSchedule string `mapstructure:"sessions_cleanup_schedule"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if _, err := cron.ParseStandard(config.SessionsCleanupSchedule); err != nil {
		return fmt.Errorf("invalid sessions_cleanup_schedule: %w", err)
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"db.connection_string":         "DB_CONNECTION_STRING",
		"db.sessions_cleanup_schedule": "SESSIONS_CLEANUP_SCHEDULE",
	})
}
