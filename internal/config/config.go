// Package config loads runtime settings from the environment. A .env file,
// when present, is loaded by main before Load is called.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/fideltutor/internal/curriculum"
	"github.com/example/fideltutor/internal/database"
)

const (
	// Default notification window, in local hours
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 22

	DefaultDBPath     = "data/fideltutor.db"
	DefaultContentDir = "content"
)

// Config holds all application configuration
type Config struct {
	// Database
	DBType      string `validate:"oneof=sqlite postgres"`
	DBPath      string `validate:"required_if=DBType sqlite"`
	DatabaseURL string `validate:"required_if=DBType postgres"`

	// Curriculum
	FidelTotalChars int    `validate:"gt=0"`
	ContentDir      string `validate:"required"`

	// Reminders
	NotificationStartHour int `validate:"gte=0,lte=23"`
	NotificationEndHour   int `validate:"gte=0,lte=23,gtefield=NotificationStartHour"`
	TelegramBotToken      string
	TelegramChatID        int64 `validate:"required_with=TelegramBotToken"`

	// Logging
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		DBType:           strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBPath:           getEnv("DB_PATH", DefaultDBPath),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		ContentDir:       getEnv("CONTENT_DIR", DefaultContentDir),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogLevel:         strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:        strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	var err error
	if cfg.FidelTotalChars, err = getEnvInt("FIDEL_TOTAL_CHARS", curriculum.DefaultFidelTotalChars); err != nil {
		return nil, err
	}
	if cfg.NotificationStartHour, err = getEnvInt("NOTIFICATION_START_HOUR", DefaultNotificationStartHour); err != nil {
		return nil, err
	}
	if cfg.NotificationEndHour, err = getEnvInt("NOTIFICATION_END_HOUR", DefaultNotificationEndHour); err != nil {
		return nil, err
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Database returns the record store settings
func (c *Config) Database() database.Config {
	if c.DBType == "postgres" {
		return database.Config{Driver: database.DriverPostgres, DSN: c.DatabaseURL}
	}
	return database.Config{Driver: database.DriverSQLite, DSN: c.DBPath}
}

// TelegramEnabled reports whether reminders go to Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

// Logger builds the application logger and installs it as the slog default
func (c *Config) Logger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
