package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// State backends selectable via STATE_BACKEND
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	BotToken       string
	TelegramAPIURL string

	PublishBaseURL string
	CategoryID     int

	StateDir string
	MediaDir string

	PollPause time.Duration

	StateBackend string
	Database     DatabaseConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),
		PublishBaseURL: getEnv("WORDPRESS_BASE_URL", "https://www.sangiuseppesanbiagio.it/wp-json"),
		StateDir:       getEnv("STATE_DIR", "context"),
		MediaDir:       getEnv("MEDIA_DIR", "media"),
		StateBackend:   getEnv("STATE_BACKEND", BackendFile),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "homilybot"),
			User:     getEnv("DB_USER", "homilybot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	categoryID, err := strconv.Atoi(getEnv("WORDPRESS_CATEGORY_ID", "16"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORDPRESS_CATEGORY_ID: %w", err)
	}
	cfg.CategoryID = categoryID

	pause, err := time.ParseDuration(getEnv("POLL_PAUSE", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_PAUSE: %w", err)
	}
	cfg.PollPause = pause

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	switch cfg.StateBackend {
	case BackendFile:
	case BackendPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown STATE_BACKEND %q", cfg.StateBackend)
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
