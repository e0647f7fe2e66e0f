// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrUnknownStoreDriver = errors.New("STORE_DRIVER must be memory, sqlite or postgres")
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Credential schemes.
const (
	CredentialsPlain  = "plain"
	CredentialsBcrypt = "bcrypt"
)

type Config struct {
	Addr        string
	StoreDriver string
	DatabaseURL string
	SQLitePath  string
	StoreKey    string

	TumblerCapacityMl int
	CredentialScheme  string

	ReminderThreshold     time.Duration
	ReminderCheckInterval time.Duration

	JWTSecret string
	LogLevel  string
	LogDir    string
}

func Load() (Config, error) {
	cfg := Config{
		Addr:                  getEnv("ADDR", ":8080"),
		StoreDriver:           getEnv("STORE_DRIVER", StoreSQLite),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		SQLitePath:            getEnv("SQLITE_PATH", "hydrosync.db"),
		StoreKey:              getEnv("STORE_KEY", "water_tracker_db"),
		TumblerCapacityMl:     getIntEnv("TUMBLER_CAPACITY_ML", 800),
		CredentialScheme:      getEnv("CREDENTIAL_SCHEME", CredentialsPlain),
		ReminderThreshold:     getDurationEnv("REMINDER_THRESHOLD", 2*time.Hour),
		ReminderCheckInterval: getDurationEnv("REMINDER_CHECK_INTERVAL", time.Minute),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogDir:                os.Getenv("LOG_DIR"),
	}

	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return Config{}, err
	}
	cfg.JWTSecret = jwtSecret

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("%w: DATABASE_URL", ErrMissingRequiredEnv)
		}
	default:
		return Config{}, fmt.Errorf("%w: got %q", ErrUnknownStoreDriver, cfg.StoreDriver)
	}

	if cfg.CredentialScheme != CredentialsPlain && cfg.CredentialScheme != CredentialsBcrypt {
		return Config{}, fmt.Errorf("CREDENTIAL_SCHEME must be plain or bcrypt, got %q", cfg.CredentialScheme)
	}
	if cfg.TumblerCapacityMl <= 0 {
		return Config{}, fmt.Errorf("TUMBLER_CAPACITY_ML must be positive, got %d", cfg.TumblerCapacityMl)
	}

	return cfg, nil
}

func mustEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
