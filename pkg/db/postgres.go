package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/tastetrail/progression/pkg/config"
)

// Open opens a Postgres connection pool using the provided settings and
// verifies connectivity with a ping.
func Open(settings *config.Settings) (*sql.DB, error) {
	db, err := sql.Open("postgres", settings.DSN())
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(settings.DBMaxOpenConns)
	db.SetMaxIdleConns(settings.DBMaxIdleConns)
	db.SetConnMaxLifetime(settings.DBConnMaxLife)
	db.SetConnMaxIdleTime(settings.DBConnMaxIdle)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// ConfigureDB applies default pool settings to an existing connection.
// Useful when the *sql.DB is constructed by the host system.
func ConfigureDB(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
}
