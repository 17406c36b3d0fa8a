package config

import (
	"github.com/stretchr/testify/assert"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfigPath = "../../configs/config.yaml"

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {

	t.Setenv("CONFIG_PATH", testConfigPath)
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("PUBLIC_URL", "https://jobs.example")
	t.Setenv("SESSION_SECRET", "override-secret-0123456789")
	t.Setenv("SESSION_TTL", "3h")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BACKEND_URL", "http://localhost:5000/api")
	t.Setenv("BACKEND_MAX_REQUESTS_PER_SECOND", "7.5")
	t.Setenv("DB_CONNECTION_STRING", "override.db")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TG_TOKEN", "tg-token")
	t.Setenv("TG_CHAT_ID", "42")

	cfg := Get()

	assert.Equal(t, ":9999", cfg.Server.Address)
	assert.Equal(t, "https://jobs.example", cfg.Server.PublicURL)
	assert.Equal(t, "override-secret-0123456789", cfg.Server.SessionSecret)
	assert.Equal(t, 3*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	assert.Equal(t, float32(7.5), cfg.Backend.MaxRequestsPerSecond)
	assert.Equal(t, "override.db", cfg.DB.ConnectionString)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, "tg-token", cfg.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
}

func Test_Config_FileValuesAreLoaded(t *testing.T) {

	cfg, err := loadConfig(testConfigPath)
	assert.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Address)
	assert.Equal(t, "http://localhost:3000", cfg.Server.PublicURL)
	assert.Equal(t, 72*time.Hour, cfg.Server.SessionTTL)
	assert.Equal(t, 30*time.Second, cfg.Backend.CacheTTL)
	assert.Equal(t, "0 0 * * *", cfg.DB.SessionsCleanupSchedule)
	assert.False(t, cfg.Telegram.Enabled())
}

func Test_Config_WhenInvalidValues_ShouldFailValidation(t *testing.T) {

	file := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  address: ":3000"
  session_secret: "short"
backend:
  base_url: "not a url"
telegram:
  token: "token-without-chat"
`)
	assert.NoError(t, os.WriteFile(file, content, 0644))

	_, err := loadConfig(file)
	assert.Error(t, err)
	assert.ErrorContains(t, err, "session_secret must be at least 16 characters")
	assert.ErrorContains(t, err, "base_url must be an absolute url")
	assert.ErrorContains(t, err, "chat_id is required")
}

func Test_Config_WhenFileMissing_ShouldReturnError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
