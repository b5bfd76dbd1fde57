package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration, read from the environment (and an
// optional .env file) through Viper.
type Config struct {
	AppPort string
	AppEnv  string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret           string
	AccessTokenTTL      time.Duration
	ConfirmationCodeTTL time.Duration

	RabbitMQURL string
	MailQueue   string
	MailFrom    string
	SMTPAddr    string

	LogLevel  string
	LogFormat string

	PageSize    int
	MaxPageSize int

	AdminUsername string
	AdminEmail    string
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "reviewhub.db")
	v.SetDefault("JWT_SECRET", "change-me-in-production")
	v.SetDefault("ACCESS_TOKEN_TTL", "24h")
	v.SetDefault("CONFIRMATION_CODE_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("MAIL_QUEUE", "mail_queue")
	v.SetDefault("MAIL_FROM", "noreply@reviewhub.local")
	v.SetDefault("SMTP_ADDR", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("MAX_PAGE_SIZE", 100)
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_EMAIL", "")
}

// Load reads a .env file if there is one, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds and validates a Config from an already populated Viper.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:             v.GetString("APP_PORT"),
		AppEnv:              v.GetString("APP_ENV"),
		DatabaseDriver:      v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AccessTokenTTL:      v.GetDuration("ACCESS_TOKEN_TTL"),
		ConfirmationCodeTTL: v.GetDuration("CONFIRMATION_CODE_TTL"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		MailQueue:           v.GetString("MAIL_QUEUE"),
		MailFrom:            v.GetString("MAIL_FROM"),
		SMTPAddr:            v.GetString("SMTP_ADDR"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:           strings.ToLower(v.GetString("LOG_FORMAT")),
		PageSize:            v.GetInt("PAGE_SIZE"),
		MaxPageSize:         v.GetInt("MAX_PAGE_SIZE"),
		AdminUsername:       v.GetString("ADMIN_USERNAME"),
		AdminEmail:          v.GetString("ADMIN_EMAIL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field rules.
func (c *Config) Validate() error {
	var errs []string

	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, "DATABASE_DRIVER must be one of: sqlite, postgres")
	}
	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long in production")
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, "ACCESS_TOKEN_TTL must be positive")
	}
	if c.ConfirmationCodeTTL <= 0 {
		errs = append(errs, "CONFIRMATION_CODE_TTL must be positive")
	}
	if c.PageSize < 1 || c.MaxPageSize < c.PageSize {
		errs = append(errs, "PAGE_SIZE must be positive and not above MAX_PAGE_SIZE")
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, "LOG_FORMAT must be one of: text, json")
	}
	if (c.AdminUsername == "") != (c.AdminEmail == "") {
		errs = append(errs, "ADMIN_USERNAME and ADMIN_EMAIL must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SlogLevel parses LOG_LEVEL.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}
	return level, nil
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func (c *Config) NewLogger() *slog.Logger {
	level, _ := c.SlogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
