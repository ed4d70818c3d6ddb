// Package database owns the storage connections.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"pregnancy-tracker/internal/config"
)

// NewPostgres opens the connection pool and verifies it with a short retry
// loop, since the database container often comes up after the server.
func NewPostgres(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			return db, nil
		}
		time.Sleep(time.Duration(i+1) * time.Second)
	}
	db.Close()
	return nil, fmt.Errorf("database unreachable: %w", err)
}
