package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultEnv           = "dev"
	defaultDBPath        = "./dev.db"
	defaultPort          = "8080"
	defaultRetentionCron = "0 3 * * *"
	defaultCurrency      = "INR"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env           string
	DBPath        string
	Port          string
	LogLevel      string
	Currency      string
	RetentionDays int
	RetentionCron string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	return LoadFrom(".env")
}

// LoadFrom behaves like Load but reads the dotenv file at path.
func LoadFrom(path string) Config {
	// Missing file is fine; production injects real env vars.
	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load dotenv file", "path", path, "error", err)
	}

	cfg := Config{
		Env:           os.Getenv("APP_ENV"),
		DBPath:        os.Getenv("DB_PATH"),
		Port:          os.Getenv("PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		Currency:      os.Getenv("CURRENCY"),
		RetentionCron: os.Getenv("RETENTION_CRON"),
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Currency == "" {
		cfg.Currency = defaultCurrency
	}
	if cfg.RetentionCron == "" {
		cfg.RetentionCron = defaultRetentionCron
	}

	if v := os.Getenv("RETENTION_DAYS"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			slog.Warn("ignoring invalid RETENTION_DAYS", "value", v)
		} else {
			cfg.RetentionDays = days
		}
	}

	return cfg
}

// IsDev reports whether the app runs in the local development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev" || c.Env == "development"
}
