package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds runtime configuration parsed from environment variables.
type Settings struct {
	// Catalog
	CatalogPath string `env:"CATALOG_PATH" envDefault:"config/catalog.json"`

	// Database
	DBHost          string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort          int           `env:"DB_PORT" envDefault:"5432"`
	DBName          string        `env:"DB_NAME" envDefault:"progression"`
	DBUser          string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword      string        `env:"DB_PASSWORD" envDefault:""`
	DBSSLMode       string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLife   time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"300s"`
	DBConnMaxIdle   time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"300s"`

	// Reset scheduling. Timezone is never hardcoded: window resolution and
	// the reset scheduler both derive from this value.
	Timezone      string        `env:"TIMEZONE" envDefault:"UTC"`
	ResetTickRate time.Duration `env:"RESET_TICK_RATE" envDefault:"1m"`
}

// ParseSettings loads Settings from environment variables.
func ParseSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &s, nil
}

// Location resolves the configured IANA timezone.
func (s *Settings) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// DSN builds the Postgres connection string.
func (s *Settings) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName, s.DBSSLMode)
}
