// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// histogramCount extracts the sample count from a Prometheus histogram.
func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	h, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T is not a metric", o)
	}
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordStoreQuery(t *testing.T) {
	before := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("duckdb", "test_upsert"))

	RecordStoreQuery("duckdb", "test_upsert", 5*time.Millisecond, nil)
	RecordStoreQuery("duckdb", "test_upsert", 5*time.Millisecond, errors.New("constraint"))

	after := testutil.ToFloat64(StoreQueryErrors.WithLabelValues("duckdb", "test_upsert"))
	if after-before != 1 {
		t.Errorf("expected exactly one error recorded, got %v", after-before)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	c := APIRequestsTotal.WithLabelValues("GET", "/api/test-meta", "200")
	before := testutil.ToFloat64(c)
	samplesBefore := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/test-meta"))

	RecordAPIRequest("GET", "/api/test-meta", 200, 12*time.Millisecond)

	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", got)
	}
	if got := histogramCount(t, APIRequestDuration.WithLabelValues("GET", "/api/test-meta")) - samplesBefore; got != 1 {
		t.Errorf("api_request_duration samples delta = %d, want 1", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordSyncRun(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		records   int
		errorType string
	}{
		{"success", "success", 38, ""},
		{"partial", "partial", 10, "upstream"},
		{"skipped", "skipped", 0, "config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year := "1999-" + tt.name
			runs := SyncRunsTotal.WithLabelValues("test", tt.status)
			runsBefore := testutil.ToFloat64(runs)

			RecordSyncRun("test", year, tt.status, time.Second, tt.records, tt.errorType)

			if got := testutil.ToFloat64(runs) - runsBefore; got != 1 {
				t.Errorf("runs delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(SyncRecordsUpserted.WithLabelValues(year)); got != float64(tt.records) {
				t.Errorf("records upserted = %v, want %d", got, tt.records)
			}
			lastSuccess := testutil.ToFloat64(SyncLastSuccess.WithLabelValues(year))
			if tt.errorType == "" && lastSuccess == 0 {
				t.Error("expected last success timestamp to be set")
			}
			if tt.errorType != "" && lastSuccess != 0 {
				t.Error("last success should not move on a failed run")
			}
		})
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	ok := UpstreamRequestsTotal.WithLabelValues("200")
	failed := UpstreamRequestsTotal.WithLabelValues("error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	samplesBefore := histogramCount(t, UpstreamRequestDuration)

	RecordUpstreamRequest(200, 100*time.Millisecond)
	RecordUpstreamRequest(0, time.Second)

	if got := histogramCount(t, UpstreamRequestDuration) - samplesBefore; got != 2 {
		t.Errorf("upstream duration samples delta = %d, want 2", got)
	}

	if got := testutil.ToFloat64(ok) - okBefore; got != 1 {
		t.Errorf("200 delta = %v", got)
	}
	if got := testutil.ToFloat64(failed) - failedBefore; got != 1 {
		t.Errorf("error delta = %v", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := CacheHits.WithLabelValues("test")
	misses := CacheMisses.WithLabelValues("test")

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(hits); got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(misses); got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
}
