package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env         string
	Port        int
	LogLevel    string
	CORSOrigins []string
	Database    DatabaseConfig
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads the optional .env file, then resolves every key from the
// environment with defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", 6060)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_DSN", "./database.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 1)

	cfg := &Config{
		Env:         v.GetString("APP_ENV"),
		Port:        v.GetInt("SERVER_PORT"),
		LogLevel:    strings.ToLower(v.GetString("LOG_LEVEL")),
		CORSOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:          v.GetString("DB_DSN"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	var errs []string

	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, "SERVER_PORT must be between 1 and 65535")
	}

	switch cfg.Database.Driver {
	case DriverSQLite:
		// A single connection serializes the conflict-check-then-insert transaction.
		if cfg.Database.MaxOpenConns != 1 {
			errs = append(errs, "DB_MAX_OPEN_CONNS must be 1 for the sqlite driver")
		}
	case DriverPostgres:
		if cfg.Database.MaxOpenConns <= 0 {
			errs = append(errs, "DB_MAX_OPEN_CONNS must be positive")
		}
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER %q is not supported (sqlite, postgres)", cfg.Database.Driver))
	}

	if cfg.Database.DSN == "" {
		errs = append(errs, "DB_DSN is required")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "off":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q is not supported", cfg.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			result = append(result, t)
		}
	}
	return result
}
