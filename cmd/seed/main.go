// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

// Command seed fills the store with several financial years in one pass.
// It uses the same configuration as the server, so DATABASE_* and
// DATA_GOV_API_* apply.
//
//	seed                         # SEED_FIN_YEARS or the built-in list
//	seed -years 2023-2024,2024-2025
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/storage"
	"github.com/tomtom215/rozgar/internal/sync"
	"github.com/tomtom215/rozgar/internal/upstream"
)

func main() {
	years := flag.String("years", "", "comma separated financial years, overrides SEED_FIN_YEARS")
	concurrency := flag.Int("concurrency", 0, "years synced in parallel, overrides SEED_CONCURRENCY")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	if *years != "" {
		cfg.Seed.FinYears = splitYears(*years)
	}
	if *concurrency > 0 {
		cfg.Seed.Concurrency = *concurrency
	}
	for _, y := range cfg.Seed.FinYears {
		if err := config.ValidateFinYear(y); err != nil {
			logging.Fatal().Err(err).Str("fin_year", y).Msg("Invalid seed year")
		}
	}
	if !cfg.Upstream.IsConfigured() {
		logging.Fatal().Msg("DATA_GOV_API_BASE and DATA_GOV_API_KEY are required to seed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, &cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to open store")
	}

	client := upstream.NewCircuitBreakerClient(upstream.NewHTTPClient(cfg.Upstream))
	ingestor := sync.NewIngestor(cfg.Upstream, client, store)

	logging.Info().Strs("fin_years", cfg.Seed.FinYears).Int("concurrency", cfg.Seed.Concurrency).Msg("Seeding store")
	results := ingestor.SyncYears(ctx, cfg.Seed.FinYears, models.TriggerSeed, cfg.Seed.Concurrency)
	report(os.Stdout, results)

	if err := store.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing store")
	}
	if sync.AllFailed(results) {
		os.Exit(1)
	}
}

func splitYears(raw string) []string {
	var out []string
	for _, y := range strings.Split(raw, ",") {
		if y = strings.TrimSpace(y); y != "" {
			out = append(out, y)
		}
	}
	return out
}

// report prints one line per year.
func report(w io.Writer, results []sync.YearResult) {
	for _, r := range results {
		switch {
		case r.Run == nil:
			fmt.Fprintf(w, "%s\terror\t%v\n", r.FinYear, r.Err)
		case r.Err != nil:
			fmt.Fprintf(w, "%s\t%s\trecords=%d skipped=%d pages=%d\t%v\n",
				r.FinYear, r.Run.Status, r.Run.Records, r.Run.Skipped, r.Run.Pages, r.Err)
		default:
			fmt.Fprintf(w, "%s\t%s\trecords=%d skipped=%d pages=%d\n",
				r.FinYear, r.Run.Status, r.Run.Records, r.Run.Skipped, r.Run.Pages)
		}
	}
}
