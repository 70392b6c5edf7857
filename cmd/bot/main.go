package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relaybot/internal/config"
	"relaybot/internal/handler"
	"relaybot/internal/health"
	"relaybot/internal/i18n"
	"relaybot/internal/logx"
	"relaybot/internal/moderation"
	"relaybot/internal/repository/postgres"
	"relaybot/internal/service"
	"relaybot/internal/transport/telegram"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var rootCmd = &cobra.Command{
	Use:   "relaybot",
	Short: "Telegram support relay bot",
	Long: `Relays user messages and voice notes to a single operator account,
filters forbidden words and lets the operator reply to and block users.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runBot() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("Starting relay bot", zap.Int64("operator_id", cfg.OperatorID))

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	// Load moderation terms and templates
	filter, err := moderation.Load(cfg.ForbiddenWordsPath)
	if err != nil {
		logger.Error("Failed to load forbidden words", zap.Error(err))
		return err
	}
	localizer, err := i18n.Load()
	if err != nil {
		logger.Error("Failed to load templates", zap.Error(err))
		return err
	}

	logger.Info("Moderation filter loaded", zap.Int("terms", len(filter.Terms())))

	// Initialize repositories and services
	userRepo := postgres.NewUserRepo(db)
	router := service.NewRouter(userRepo, filter, localizer, cfg.OperatorID, logger)

	// Initialize Telegram bot. The handler is built after the bot, so the
	// error hook resolves it lazily. Poll failures go through the same hook.
	var h *handler.Handler
	onError := func(err error, c tele.Context) {
		if h != nil {
			h.HandleError(err, c)
			return
		}
		logger.Error("Bot error before handlers were registered", zap.Error(err))
	}
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.BotToken,
		Poller:  telegram.NewPoller(10*time.Second, onError),
		OnError: onError,
	})
	if err != nil {
		logger.Error("Failed to create bot", zap.Error(err))
		return err
	}

	logger.Info("Telegram bot initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := service.NewDispatcher(telegram.NewClient(bot), cfg.OperatorID, logger)
	h = handler.NewHandler(ctx, bot, router, dispatcher, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start liveness endpoint in background
	liveness := health.NewServer(cfg.HTTPAddr(), logger)
	go func() {
		if err := liveness.Start(); err != nil {
			logger.Error("Liveness server stopped", zap.Error(err))
		}
	}()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := liveness.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Liveness server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logx.NewLogger(logx.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
		File:   cfg.Log.File,
		Rotation: logx.RotationConfig{
			MaxSizeMB:  cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAgeDays: cfg.Log.MaxAgeDays,
		},
	})
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

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

func newMigrator(db *sql.DB, source string) (*migrate.Migrate, error) {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}
	return m, nil
}

// runMigrations applies pending migrations
func runMigrations(db *sql.DB, source string, logger *zap.Logger) error {
	m, err := newMigrator(db, source)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Migrations applied successfully")
	}

	return nil
}
