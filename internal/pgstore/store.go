// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
)

// DriverName labels store metrics and health output.
const DriverName = "postgres"

// Store wraps a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New migrates the database and opens a pool with every session in UTC.
func New(ctx context.Context, cfg *config.DatabaseConfig) (*Store, error) {
	if err := Migrate(cfg.URL); err != nil {
		return nil, err
	}

	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	pcfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pcfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().Str("host", pcfg.ConnConfig.Host).Str("database", pcfg.ConnConfig.Database).
		Int32("max_conns", pcfg.MaxConns).Msg("PostgreSQL store ready")
	return &Store{pool: pool}, nil
}

// Driver returns "postgres".
func (s *Store) Driver() string {
	return DriverName
}

// Ping checks that a connection can be acquired.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the pool. It never fails; the error return lets Store
// satisfy io.Closer like the DuckDB store.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
