// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// DefaultPostgresImage is the image used for store integration tests.
const DefaultPostgresImage = "postgres:16-alpine"

// PostgresContainer is a running PostgreSQL instance for one test.
type PostgresContainer struct {
	*postgres.PostgresContainer
	URL string
}

// NewPostgresContainer starts PostgreSQL and returns its connection URL.
// The container is terminated when the test finishes.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	container, err := postgres.Run(ctx,
		DefaultPostgresImage,
		postgres.WithDatabase("rozgar_test"),
		postgres.WithUsername("rozgar"),
		postgres.WithPassword("rozgar"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{
			"test":      "rozgar-pgstore",
			"test-name": t.Name(),
		}),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	terminateOnCleanup(t, container)

	url, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get postgres connection string: %v", err)
	}
	return &PostgresContainer{PostgresContainer: container, URL: url}
}
