// Package database opens the Postgres handle shared by the server and the
// scheduled jobs.
package database

import (
	"context"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

// Open connects to Postgres. gorm pings the server before returning.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	return db, nil
}

// Probe reports whether db still answers, for health checks.
func Probe(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return db.DB().PingContext(ctx)
	}
}
