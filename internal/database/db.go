package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blog-comments-api/internal/config"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// DB is the comments store connection pool. It satisfies the health check
// used by the /health endpoint.
type DB struct {
	*sql.DB
	log zerolog.Logger
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// New opens the pool and waits for PostgreSQL to answer, retrying
// cfg.ConnectRetries times so the API can start alongside its database.
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	sqlDB, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	db := &DB{
		DB:  sqlDB,
		log: log.With().Str("component", "comments_store").Logger(),
	}

	if err := db.waitReady(context.Background(), sqlDB, cfg); err != nil {
		sqlDB.Close()
		return nil, err
	}

	target := cfg.Host + "/" + cfg.Name
	if cfg.URL != "" {
		target = "DATABASE_URL"
	}
	db.log.Info().
		Str("target", target).
		Int("max_open_conns", cfg.MaxOpenConns).
		Dur("query_timeout", cfg.QueryTimeout).
		Msg("Comments store connected")

	return db, nil
}

// waitReady pings until success, the retry budget is spent or ctx ends
func (db *DB) waitReady(ctx context.Context, p pinger, cfg *config.DatabaseConfig) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.ConnectRetries; attempt++ {
		if attempt > 0 {
			db.log.Warn().
				Err(lastErr).
				Int("attempt", attempt).
				Int("retries", cfg.ConnectRetries).
				Dur("delay", cfg.ConnectRetryDelay).
				Msg("Comments store not ready, retrying")

			select {
			case <-ctx.Done():
				return fmt.Errorf("failed to ping database: %w", ctx.Err())
			case <-time.After(cfg.ConnectRetryDelay):
			}
		}

		pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		lastErr = p.PingContext(pingCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("failed to ping database after %d attempts: %w", cfg.ConnectRetries+1, lastErr)
}

// RunMigrations brings the comments schema up to date from migrationsPath
func (db *DB) RunMigrations(migrationsPath string) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to load migrations from %s: %w", migrationsPath, err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		db.log.Debug().Str("path", migrationsPath).Msg("Comments schema already current")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("comments schema is dirty at version %d", version)
	}

	db.log.Info().Uint("schema_version", version).Msg("Comments schema ready")
	return nil
}

// HealthCheck reports whether the comments store answers
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.PingContext(ctx)
}
