package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultOperatorID is the operator account used when OPERATOR_ID is unset
const DefaultOperatorID int64 = 7670252496

// Config holds all application configuration
type Config struct {
	BotToken           string
	OperatorID         int64
	DatabaseURL        string
	Database           DatabaseConfig
	HTTPPort           string
	ForbiddenWordsPath string
	MigrationsPath     string
	Log                LogConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken:    getEnv("BOT_TOKEN", os.Getenv("TOKEN")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "relaybot"),
			User:     getEnv("DB_USER", "relaybot"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		HTTPPort:           getEnv("HTTP_PORT", "5000"),
		ForbiddenWordsPath: os.Getenv("FORBIDDEN_WORDS_PATH"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "file://migrations"),
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DATABASE_URL is not set")
	}

	var err error
	if cfg.OperatorID, err = getEnvInt64("OPERATOR_ID", DefaultOperatorID); err != nil {
		return nil, err
	}
	if cfg.Log.Pretty, err = getEnvBool("LOG_PRETTY", false); err != nil {
		return nil, err
	}
	if cfg.Log.MaxSizeMB, err = getEnvInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.Log.MaxBackups, err = getEnvInt("LOG_MAX_BACKUPS", 5); err != nil {
		return nil, err
	}
	if cfg.Log.MaxAgeDays, err = getEnvInt("LOG_MAX_AGE_DAYS", 30); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string. DATABASE_URL wins when set.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// HTTPAddr returns the liveness listener address
func (c *Config) HTTPAddr() string {
	return ":" + c.HTTPPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvInt(key string, defaultValue int) (int, error) {
	n, err := getEnvInt64(key, int64(defaultValue))
	return int(n), err
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
