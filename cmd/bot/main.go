package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homilybot/internal/config"
	"homilybot/internal/poller"
	"homilybot/internal/repository"
	filerepo "homilybot/internal/repository/file"
	"homilybot/internal/repository/postgres"
	"homilybot/internal/service"
	"homilybot/internal/telegram"
	"homilybot/internal/wordpress"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Homily Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		logger.Fatal("Failed to create media directory", zap.Error(err))
	}

	// Initialize conversation store
	repo, cleanup, err := buildRepository(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize conversation store", zap.Error(err))
	}
	defer cleanup()

	logger.Info("Conversation store ready", zap.String("backend", cfg.StateBackend))

	// Initialize Telegram client
	chat, err := telegram.NewClient(cfg.BotToken, cfg.TelegramAPIURL)
	if err != nil {
		logger.Fatal("Failed to create Telegram client", zap.Error(err))
	}

	logger.Info("Telegram client initialized")

	// Initialize conversation service
	newPublisher := func(apiKey, secret string) service.Publisher {
		return wordpress.NewClient(cfg.PublishBaseURL, apiKey, secret)
	}
	svc := service.NewConversationService(repo, chat, newPublisher, cfg.MediaDir, cfg.CategoryID, logger)

	// Start polling in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := poller.New(chat, svc, cfg.PollPause, logger)
	go func() {
		logger.Info("Bot started successfully")
		p.Run(ctx)
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	cancel()

	logger.Info("Bot stopped gracefully")
}

// buildRepository selects the conversation store backend from config
func buildRepository(cfg *config.Config, logger *zap.Logger) (repository.ConversationRepository, func(), error) {
	switch cfg.StateBackend {
	case config.BackendPostgres:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, nil, err
		}
		return postgres.NewConversationRepo(db), func() { db.Close() }, nil

	default:
		if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create state directory: %w", err)
		}
		return filerepo.NewConversationRepo(cfg.StateDir), func() {}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database migrations completed")

	return nil
}
