// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/database"
	"github.com/tomtom215/rozgar/internal/pgstore"
	"github.com/tomtom215/rozgar/internal/service"
	"github.com/tomtom215/rozgar/internal/sync"
)

// Store is everything the server and the seeder need from a backend.
type Store interface {
	service.Store
	sync.Store
	io.Closer
}

var (
	_ Store = (*database.DB)(nil)
	_ Store = (*pgstore.Store)(nil)
)

// Open returns the store selected by cfg.Driver. An empty driver means DuckDB.
func Open(ctx context.Context, cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverDuckDB, "":
		db, err := database.New(cfg)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		s, err := pgstore.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
