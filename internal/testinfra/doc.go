// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Package testinfra starts Docker-backed dependencies for integration tests.
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/pgstore/...
//
//	func TestStore(t *testing.T) {
//	    pg := testinfra.NewPostgresContainer(t)
//	    store, err := pgstore.New(ctx, &config.DatabaseConfig{URL: pg.URL, MaxConns: 4})
//	    ...
//	}
package testinfra
