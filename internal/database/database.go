// File: internal/database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/zml18x/SMS-Backend-sub000/internal/config"
)

const (
	applicationName = "sms-backend"

	connMaxLifetime     = time.Hour
	connMaxIdleTime     = 30 * time.Minute
	poolHealthCheckTick = 5 * time.Minute
	monitorInterval     = 30 * time.Second
)

// ErrSchemaMissing is returned by HealthCheck when the booking tables are absent.
var ErrSchemaMissing = errors.New("app_data schema is not migrated")

// newPoolConfig parses the DSN and applies pool sizing and per-session settings.
// Statements are cancelled server side once they outlive an HTTP request.
func newPoolConfig(cfg config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}
	poolConfig.ConnConfig.Tracer = otelpgx.NewTracer()

	poolConfig.MaxConns = int32(cfg.DbMaxConns)
	poolConfig.MinConns = int32(cfg.DbMinConns)
	poolConfig.MaxConnLifetime = connMaxLifetime
	poolConfig.MaxConnIdleTime = connMaxIdleTime
	poolConfig.HealthCheckPeriod = poolHealthCheckTick

	params := poolConfig.ConnConfig.RuntimeParams
	params["application_name"] = applicationName
	// Appointment times are stored as timestamptz and always read back in UTC.
	params["timezone"] = "UTC"
	if timeout := cfg.GetRequestTimeout(); timeout > 0 {
		params["statement_timeout"] = strconv.FormatInt(timeout.Milliseconds(), 10)
	}

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		log.Debug().Uint32("pid", conn.PgConn().PID()).Msg("Database connection established")
		return nil
	}
	return poolConfig, nil
}

// ConnectDB opens the pool described by cfg and verifies it with a ping.
func ConnectDB(cfg config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := newPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Info().
		Int32("max_conns", poolConfig.MaxConns).
		Int32("min_conns", poolConfig.MinConns).
		Str("statement_timeout_ms", poolConfig.ConnConfig.RuntimeParams["statement_timeout"]).
		Msg("Database connection pool established")

	return pool, nil
}

// StartConnectionMonitoring logs pool usage every monitorInterval until ctx is done.
func StartConnectionMonitoring(ctx context.Context, db *pgxpool.Pool) {
	go func() {
		ticker := time.NewTicker(monitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			stats := db.Stat()
			log.Info().
				Int32("acquired_conns", stats.AcquiredConns()).
				Int32("idle_conns", stats.IdleConns()).
				Int64("empty_acquire_count", stats.EmptyAcquireCount()).
				Msg("Database connection pool statistics")
		}
	}()
}

// Querier is the subset of the pool HealthCheck needs.
type Querier interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// HealthCheck pings the database and confirms the booking tables exist.
func HealthCheck(ctx context.Context, db Querier) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var migrated bool
	err := db.QueryRow(ctx, `SELECT to_regclass('app_data.appointments') IS NOT NULL`).Scan(&migrated)
	if err != nil {
		return fmt.Errorf("schema query failed: %w", err)
	}
	if !migrated {
		return ErrSchemaMissing
	}
	return nil
}

// GetConnectionStats reports pool usage for the health endpoints.
func GetConnectionStats(db *pgxpool.Pool) map[string]any {
	stats := db.Stat()
	return map[string]any{
		"total_connections":    stats.TotalConns(),
		"acquired_connections": stats.AcquiredConns(),
		"idle_connections":     stats.IdleConns(),
		"max_connections":      stats.MaxConns(),
		"acquire_duration_ms":  stats.AcquireDuration().Milliseconds(),
	}
}
