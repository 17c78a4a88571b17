// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/service"
	syncpkg "github.com/tomtom215/rozgar/internal/sync"
)

func TestDistrictData_MissingParamsNeverTouchStore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  string
		wantErr string
	}{
		{name: "no params", target: "/api/data", wantErr: "district_code and fin_year are required"},
		{name: "no fin_year", target: "/api/data?district_code=0515", wantErr: "district_code and fin_year are required"},
		{name: "no district_code", target: "/api/data?fin_year=2023-2024", wantErr: "district_code and fin_year are required"},
		{name: "blank values", target: "/api/data?district_code=%20&fin_year=", wantErr: "district_code and fin_year are required"},
		{name: "malformed year", target: "/api/data?district_code=0515&fin_year=2023", wantErr: "Invalid query parameters"},
		{name: "non consecutive year", target: "/api/data?district_code=0515&fin_year=2023-2025", wantErr: "Invalid query parameters"},
		{name: "code with symbols", target: "/api/data?district_code=05;15&fin_year=2023-2024", wantErr: "Invalid query parameters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := newTestEnv(t, 24)

			rec := env.do(t, http.MethodGet, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
			}
			body := decode[models.ErrorResponse](t, rec)
			if body.Error != tt.wantErr {
				t.Errorf("error = %q, want %q", body.Error, tt.wantErr)
			}
			if n := env.store.queries.Load(); n != 0 {
				t.Errorf("store queries = %d, want 0", n)
			}
			if n := env.upstream.callCount(); n != 0 {
				t.Errorf("upstream calls = %d, want 0", n)
			}
		})
	}
}

func TestDistrictData_NotFoundAfterOneFetch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 0)

	rec := env.do(t, http.MethodGet, "/api/data?district_code=0515&fin_year=2023-2024")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body %s", rec.Code, rec.Body.String())
	}
	body := decode[models.ErrorResponse](t, rec)
	if body.Error != "No data found for the requested district/fin_year" {
		t.Errorf("error = %q", body.Error)
	}
	if n := env.upstream.callCount(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestDistrictData_SortedWithSummary(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 24)

	rec := env.do(t, http.MethodGet, "/api/data?district_code=0502&fin_year=2024-2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	body := decode[models.DistrictDataResponse](t, rec)

	if body.Summary.RecordsCount != 12 || len(body.Records) != 12 || len(body.Metrics) != 12 {
		t.Fatalf("counts: summary=%d records=%d metrics=%d", body.Summary.RecordsCount, len(body.Records), len(body.Metrics))
	}
	if body.Summary.FirstMonth != "April" || body.Summary.LastMonth != "March" {
		t.Errorf("first/last = %s/%s, want April/March", body.Summary.FirstMonth, body.Summary.LastMonth)
	}
	if body.Summary.DistrictName != "DISTRICT 01" || body.Summary.DistrictCode != "0502" {
		t.Errorf("summary identity = %+v", body.Summary)
	}
	for i, r := range body.Records {
		if r.Month != fiscalMonths[i] {
			t.Errorf("records[%d].Month = %s, want %s", i, r.Month, fiscalMonths[i])
		}
	}
	if got := body.Summary.Totals.TotalExpenditure; got != 12*100.5 {
		t.Errorf("total expenditure = %v, want %v", got, 12*100.5)
	}
	// 24 records in pages of 10.
	if n := env.upstream.callCount(); n != 3 {
		t.Errorf("upstream calls = %d, want 3", n)
	}
}

func TestBihar_MissSyncsOnceThenServesStore(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 25)

	rec := env.do(t, http.MethodGet, "/api/bihar?fin_year=2024-2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	body := decode[models.YearListResponse](t, rec)
	if body.Status != "ok" || body.Count != 25 || len(body.Data) != 25 {
		t.Fatalf("status=%q count=%d len=%d", body.Status, body.Count, len(body.Data))
	}
	if n := env.upstream.callCount(); n != 3 {
		t.Errorf("upstream calls after miss = %d, want 3", n)
	}
	if body.Data[0].DistrictCode == "" || body.Data[0].Metrics.IsEmpty() {
		t.Errorf("first row incomplete: %+v", body.Data[0])
	}

	rec = env.do(t, http.MethodGet, "/api/bihar?fin_year=2024-2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("second status = %d", rec.Code)
	}
	if n := env.upstream.callCount(); n != 3 {
		t.Errorf("upstream calls after hit = %d, want 3", n)
	}
}

func TestBihar_ClientDisconnectStillStoresWholeYear(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 40)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env.upstream.onFetch = func(offset int) {
		if offset == 10 {
			cancel()
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/bihar?fin_year=2024-2025", nil).WithContext(ctx)
	env.handler.ServeHTTP(httptest.NewRecorder(), req)

	if n := env.upstream.callCount(); n != 4 {
		t.Errorf("upstream calls = %d, want 4", n)
	}
	rows, _ := env.store.ListByYear(context.Background(), "2024-2025")
	if len(rows) != 40 {
		t.Fatalf("stored rows = %d, want 40", len(rows))
	}
	runs, _ := env.store.ListSyncRuns(context.Background(), 1)
	if len(runs) != 1 || runs[0].Status != models.SyncStatusSuccess || runs[0].Records != 40 {
		t.Errorf("last run = %+v, want success with 40 records", runs)
	}

	rec := env.do(t, http.MethodGet, "/api/bihar?fin_year=2024-2025")
	if body := decode[models.YearListResponse](t, rec); body.Count != 40 {
		t.Errorf("count = %d, want 40", body.Count)
	}
	if n := env.upstream.callCount(); n != 4 {
		t.Errorf("upstream calls after hit = %d, want 4", n)
	}
}

func TestBihar_DefaultsToConfiguredYear(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 12)

	rec := env.do(t, http.MethodGet, "/api/bihar")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	body := decode[models.YearListResponse](t, rec)
	if body.Count != 12 {
		t.Errorf("count = %d, want 12", body.Count)
	}
	for _, r := range body.Data {
		if r.FinYear != "2024-2025" {
			t.Fatalf("fin_year = %q", r.FinYear)
		}
	}
}

func TestBihar_EmptyUpstreamIsEmptyList(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 30)

	rec := env.do(t, http.MethodGet, "/api/bihar?fin_year=2019-2020")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Errorf("want empty data array, got %s", rec.Body.String())
	}
}

func TestBihar_StoreFailureIs500(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 10)
	env.store.readErr = errors.New("disk on fire")

	rec := env.do(t, http.MethodGet, "/api/bihar?fin_year=2024-2025")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decode[models.ErrorResponse](t, rec)
	if body.Error != "Server error" || !strings.Contains(body.Message, "disk on fire") {
		t.Errorf("body = %+v", body)
	}
}

func TestBihar_MalformedYear(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 10)

	rec := env.do(t, http.MethodGet, "/api/bihar?fin_year=last-year")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if n := env.store.queries.Load(); n != 0 {
		t.Errorf("store queries = %d, want 0", n)
	}
}

func TestMeta_NeverSyncs(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 24)

	rec := env.do(t, http.MethodGet, "/api/meta")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"fin_years":[],"districts":[]}` {
		t.Errorf("body = %s", got)
	}
	if n := env.upstream.callCount(); n != 0 {
		t.Errorf("upstream calls = %d, want 0", n)
	}

	// A sync clears the cached projection.
	if rec := env.do(t, http.MethodPost, "/api/sync?fin_year=2024-2025"); rec.Code != http.StatusOK {
		t.Fatalf("sync status = %d; body %s", rec.Code, rec.Body.String())
	}
	meta := decode[models.Meta](t, env.do(t, http.MethodGet, "/api/meta"))
	if len(meta.FinYears) != 1 || meta.FinYears[0] != "2024-2025" {
		t.Errorf("fin_years = %v", meta.FinYears)
	}
	if len(meta.Districts) != 2 || meta.Districts[0].DistrictName != "DISTRICT 00" {
		t.Errorf("districts = %+v", meta.Districts)
	}
}

func TestTriggerSyncAndRuns(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 15)

	rec := env.do(t, http.MethodPost, "/api/sync?fin_year=2024-2025")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}
	run := decode[models.SyncRun](t, rec)
	if run.Status != models.SyncStatusSuccess || run.Records != 15 || run.Trigger != models.TriggerManual {
		t.Errorf("run = %+v", run)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
	}

	runs := decode[models.SyncRunsResponse](t, env.do(t, http.MethodGet, "/api/sync/runs?limit=5"))
	if runs.Count != 1 || runs.Runs[0].RunID != run.RunID {
		t.Errorf("runs = %+v", runs)
	}

	for _, target := range []string{"/api/sync/runs?limit=0", "/api/sync/runs?limit=500", "/api/sync/runs?limit=ten"} {
		if rec := env.do(t, http.MethodGet, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, rec.Code)
		}
	}
}

func TestTriggerSync_UpstreamFailureIs502(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 15)
	env.upstream.err = errors.New("connection reset")

	rec := env.do(t, http.MethodPost, "/api/sync?fin_year=2024-2025")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502; body %s", rec.Code, rec.Body.String())
	}
	if body := decode[models.ErrorResponse](t, rec); !strings.Contains(body.Message, "connection reset") {
		t.Errorf("message = %q", body.Message)
	}
}

func TestTriggerSync_NotConfiguredIs503(t *testing.T) {
	t.Parallel()

	store := newCountingStore()
	ingestor := syncpkg.NewIngestor(config.UpstreamConfig{BatchSize: 10}, newFakeUpstream(10), store)
	svc := service.New(store, ingestor, service.Options{DefaultFinYear: "2024-2025"})
	h := NewRouter(NewHandler(svc), nil).Setup()

	env := &testEnv{store: store, handler: h}
	rec := env.do(t, http.MethodPost, "/api/sync")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503; body %s", rec.Code, rec.Body.String())
	}

	// Reads still answer, with nothing.
	rec = env.do(t, http.MethodGet, "/api/bihar?fin_year=2024-2025")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Errorf("bihar = %d %s", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, 0)

	if rec := env.do(t, http.MethodGet, "/health/live"); rec.Code != http.StatusOK {
		t.Errorf("live = %d", rec.Code)
	}
	rec := env.do(t, http.MethodGet, "/health/ready")
	if rec.Code != http.StatusOK {
		t.Errorf("ready = %d", rec.Code)
	}
	if body := decode[models.HealthResponse](t, rec); body.Database != "memory" || body.Upstream != "" {
		t.Errorf("database = %q, upstream = %q", body.Database, body.Upstream)
	}

	env.store.pingErr = errors.New("closed")
	rec = env.do(t, http.MethodGet, "/health/ready")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready with failed ping = %d, want 503", rec.Code)
	}
	if body := decode[models.HealthResponse](t, rec); body.Status != "unavailable" || body.Error != "closed" {
		t.Errorf("body = %+v", body)
	}
}

type stubBreaker string

func (b stubBreaker) State() string { return string(b) }

func TestHealthReady_ReportsBreakerState(t *testing.T) {
	t.Parallel()

	store := newCountingStore()
	handler := NewHandler(service.New(store, nil, service.Options{}))
	handler.SetUpstream(stubBreaker("open"))
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	router := NewRouter(handler, NewChiMiddleware(cfg)).Setup()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("ready with open breaker = %d, want 200", rec.Code)
	}
	body := decode[models.HealthResponse](t, rec)
	if body.Status != "ok" || body.Upstream != "open" {
		t.Errorf("body = %+v, want status ok with upstream open", body)
	}
}
