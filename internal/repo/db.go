// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping for PostgreSQL
// and schema migrations.
package repo

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tbourn/go-items-backend/internal/config"
	"github.com/tbourn/go-items-backend/internal/domain"
)

// Open connects to PostgreSQL, configures the connection pool, and probes
// the link with a ping before returning the handle.
//
// Bootstrap calls Open exactly once and injects the result into the
// service layer; there is no lazily-initialized process global. If the
// probe fails the underlying error is propagated and the caller is
// expected to terminate the process — serving requests without a usable
// pool is worse than restarting.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("acquire pool: %w", err)
	}

	// Pool
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	// Liveness probe: fail fast instead of discovering a dead pool on the
	// first request.
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// AutoMigrate applies the schema for all persisted models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Item{})
}
