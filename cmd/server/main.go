// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/rozgar/internal/api"
	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/refresh"
	"github.com/tomtom215/rozgar/internal/service"
	"github.com/tomtom215/rozgar/internal/storage"
	"github.com/tomtom215/rozgar/internal/supervisor"
	"github.com/tomtom215/rozgar/internal/supervisor/services"
	"github.com/tomtom215/rozgar/internal/sync"
	"github.com/tomtom215/rozgar/internal/upstream"

	_ "github.com/tomtom215/rozgar/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("state", cfg.Upstream.State).Msg("Starting Rozgar with supervisor tree")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.Open(ctx, &cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	if !cfg.Upstream.IsConfigured() {
		logging.Warn().Msg("DATA_GOV_API_BASE or DATA_GOV_API_KEY not set, serving stored data only")
	}

	client := upstream.NewCircuitBreakerClient(upstream.NewHTTPClient(cfg.Upstream))
	ingestor := sync.NewIngestor(cfg.Upstream, client, store)

	svc := service.New(store, ingestor, service.Options{
		DefaultFinYear: cfg.Upstream.DefaultFinYear,
		MetaTTL:        cfg.Cache.MetaTTL,
		SyncTimeout:    cfg.Upstream.SyncTimeout,
	})
	ingestor.SetOnSyncCompleted(func(*models.SyncRun) {
		svc.InvalidateCache()
	})

	scheduler, err := refresh.NewScheduler(cfg.Refresh, ingestor)
	if err != nil {
		logging.Fatal().Err(err).Str("cron", cfg.Refresh.Cron).Msg("Failed to create refresh scheduler")
	}

	handler := api.NewHandler(svc)
	handler.SetUpstream(client)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Server)))
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	treeConfig := supervisor.DefaultTreeConfig()
	treeConfig.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), treeConfig)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewRefreshService(scheduler))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Str("driver", store.Driver()).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, u := range unstopped {
		logging.Warn().Str("service", u.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}
