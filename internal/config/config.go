package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

const devSecret = "dev-secret-change-in-production"

// Storage drivers.
const (
	StorageFile   = "file"
	StorageMySQL  = "mysql"
	StorageSQLite = "sqlite"
)

var (
	ErrWeakSecret     = errors.New("JWT_SECRET must be set to at least 32 characters in production")
	ErrUnknownStorage = errors.New("STORAGE_DRIVER must be one of file, mysql, sqlite")
	ErrMissingDSN     = errors.New("DATABASE_DSN is required for sql storage")
)

type Config struct {
	Port          string
	Env           string
	StorageDriver string
	DataPath      string
	DatabaseDSN   string
	DocumentName  string
	JWTSecret     string
	JWTExpiry     time.Duration
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	expiry, err := getDuration("JWT_EXPIRY", 30*24*time.Hour)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageFile),
		DataPath:      getEnv("DATA_PATH", "data.json"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		DocumentName:  getEnv("DOCUMENT_NAME", "cuplet"),
		JWTSecret:     getEnv("JWT_SECRET", devSecret),
		JWTExpiry:     expiry,
	}

	return cfg, cfg.Validate()
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.IsProduction() && (c.JWTSecret == devSecret || len(c.JWTSecret) < 32) {
		return ErrWeakSecret
	}

	switch c.StorageDriver {
	case StorageFile:
	case StorageMySQL, StorageSQLite:
		if c.DatabaseDSN == "" {
			return ErrMissingDSN
		}
	default:
		return ErrUnknownStorage
	}

	if c.JWTExpiry <= 0 {
		return fmt.Errorf("JWT_EXPIRY must be positive, got %s", c.JWTExpiry)
	}

	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
