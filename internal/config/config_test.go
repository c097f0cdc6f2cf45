package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearEnv unsets a variable for the duration of the test
func clearEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_MissingBotToken(t *testing.T) {
	clearEnv(t, "TELEGRAM_BOT_TOKEN")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	for _, key := range []string{
		"TELEGRAM_API_URL", "WORDPRESS_BASE_URL", "WORDPRESS_CATEGORY_ID",
		"STATE_DIR", "MEDIA_DIR", "POLL_PAUSE", "STATE_BACKEND",
	} {
		clearEnv(t, key)
	}

	cfg, err := Load()
	assert.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "test_token", cfg.BotToken)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Equal(t, "https://www.sangiuseppesanbiagio.it/wp-json", cfg.PublishBaseURL)
	assert.Equal(t, 16, cfg.CategoryID)
	assert.Equal(t, "context", cfg.StateDir)
	assert.Equal(t, "media", cfg.MediaDir)
	assert.Equal(t, 500*time.Millisecond, cfg.PollPause)
	assert.Equal(t, BackendFile, cfg.StateBackend)
}

func TestLoad_PostgresBackendRequiresPassword(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	t.Setenv("STATE_BACKEND", BackendPostgres)
	clearEnv(t, "DB_PASSWORD")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PASSWORD")

	t.Setenv("DB_PASSWORD", "secret")

	cfg, err = Load()
	assert.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.StateBackend)
	assert.Equal(t, "secret", cfg.Database.Password)
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	t.Setenv("STATE_BACKEND", "redis")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "STATE_BACKEND")
}

func TestLoad_InvalidCategoryID(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	t.Setenv("WORDPRESS_CATEGORY_ID", "audio")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "WORDPRESS_CATEGORY_ID")
}

func TestLoad_InvalidPollPause(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test_token")
	t.Setenv("POLL_PAUSE", "soon")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "POLL_PAUSE")
}
