// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

/*
Package sync ingests MGNREGA district metrics from data.gov.in into the
store.

An Ingestor pages through the upstream resource for one financial year and
upserts each page in its own store transaction:

	offset := 0
	for {
	    page := client.FetchPage(ctx, finYear, offset, batchSize)
	    if len(page.Records) == 0 { break }
	    store.UpsertMetrics(ctx, convert(page.Records))
	    if len(page.Records) < batchSize { break }
	    offset += batchSize
	    if offset >= page.Total { break }
	}

Ingestion is best-effort. Pages written before a failure stay written and
the run is recorded as partial. Records missing district_code or month are
skipped and counted on the run. A missing upstream base URL or API key skips
the run entirely with ErrUpstreamNotConfigured.

Every invocation produces a models.SyncRun, identified by a ULID, which is
persisted before and after the run and attached to the context so that all
log lines of the run carry its sync_run_id.

Concurrency:

Runs are not deduplicated. Two readers missing the same year trigger two
runs, which converge on the same rows because upserts are keyed by
(district_code, fin_year, month). SyncYears fans out several years with a
bounded errgroup for the seed command.
*/
package sync
