package config

import (
	"fmt"
	"github.com/spf13/viper"
)

// TelegramConfig is optional; notifications are off while Token is empty.
type TelegramConfig struct {
	Token  string `mapstructure:"token"`
	ChatID int64  `mapstructure:"chat_id"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Enabled() && config.ChatID == 0 {
		return fmt.Errorf("chat_id is required when token is set")
	}
	return nil
}

func (config TelegramConfig) bindEnvironmentVariables(v *viper.Viper) error {
	return bindAll(v, map[string]string{
		"telegram.token":   "TG_TOKEN",
		"telegram.chat_id": "TG_CHAT_ID",
	})
}
