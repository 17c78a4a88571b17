// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/models"
	"github.com/tomtom215/rozgar/internal/service"
	syncpkg "github.com/tomtom215/rozgar/internal/sync"
	"github.com/tomtom215/rozgar/internal/upstream"
)

var fiscalMonths = []string{"April", "May", "June", "July", "August", "September", "October", "November", "December", "January", "February", "March"}

// countingStore is an in-memory store that counts every call.
type countingStore struct {
	mu      sync.Mutex
	rows    map[models.RecordKey]models.MetricRecord
	runs    []models.SyncRun
	queries atomic.Int32
	readErr error
	pingErr error
}

func newCountingStore() *countingStore {
	return &countingStore{rows: make(map[models.RecordKey]models.MetricRecord)}
}

func (s *countingStore) UpsertMetrics(_ context.Context, records []models.MetricRecord) (int, error) {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.rows[r.Key()] = r
	}
	return len(records), nil
}

func (s *countingStore) SaveSyncRun(_ context.Context, run *models.SyncRun) error {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.runs {
		if s.runs[i].RunID == run.RunID {
			s.runs[i] = *run
			return nil
		}
	}
	s.runs = append(s.runs, *run)
	return nil
}

func (s *countingStore) list(match func(models.MetricRecord) bool) ([]models.MetricRecord, error) {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	var out []models.MetricRecord
	for _, r := range s.rows {
		if match(r) {
			out = append(out, r)
		}
	}
	models.SortByDistrictMonth(out)
	return out, nil
}

func (s *countingStore) ListByYear(_ context.Context, finYear string) ([]models.MetricRecord, error) {
	return s.list(func(r models.MetricRecord) bool { return r.FinYear == finYear })
}

func (s *countingStore) ListByDistrictYear(_ context.Context, code, finYear string) ([]models.MetricRecord, error) {
	return s.list(func(r models.MetricRecord) bool { return r.FinYear == finYear && r.DistrictCode == code })
}

func (s *countingStore) FinYears(context.Context) ([]string, error) {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	var years []string
	for k := range s.rows {
		if !slices.Contains(years, k.FinYear) {
			years = append(years, k.FinYear)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years, nil
}

func (s *countingStore) Districts(context.Context) ([]models.DistrictRef, error) {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]models.DistrictRef)
	for _, r := range s.rows {
		seen[r.DistrictCode] = models.DistrictRef{DistrictCode: r.DistrictCode, DistrictName: r.DistrictName}
	}
	out := make([]models.DistrictRef, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistrictName < out[j].DistrictName })
	return out, nil
}

func (s *countingStore) ListSyncRuns(_ context.Context, limit int) ([]models.SyncRun, error) {
	s.queries.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := slices.Clone(s.runs)
	slices.Reverse(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *countingStore) Ping(context.Context) error { return s.pingErr }

func (s *countingStore) Driver() string { return "memory" }

// fakeUpstream serves n records for 2024-2025, 12 months per district.
type fakeUpstream struct {
	mu      sync.Mutex
	records []map[string]any
	calls   int
	err     error

	// onFetch runs before each page is served, with the page offset.
	onFetch func(offset int)
}

func newFakeUpstream(n int) *fakeUpstream {
	u := &fakeUpstream{}
	for i := 0; i < n; i++ {
		u.records = append(u.records, map[string]any{
			"district_code":           fmt.Sprintf("%04d", 501+i/12),
			"district_name":           fmt.Sprintf("DISTRICT %02d", i/12),
			"fin_year":                "2024-2025",
			"month":                   fiscalMonths[i%12],
			"Total_Exp":               "100.5",
			"Total_Households_Worked": float64(i),
		})
	}
	return u
}

func (u *fakeUpstream) FetchPage(ctx context.Context, finYear string, offset, limit int) (*upstream.Page, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.calls++
	if u.onFetch != nil {
		u.onFetch(offset)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if u.err != nil {
		return nil, u.err
	}
	page := &upstream.Page{}
	if finYear != "2024-2025" {
		return page, nil
	}
	page.Total = len(u.records)
	end := min(offset+limit, len(u.records))
	if offset < end {
		page.Records = u.records[offset:end]
	}
	return page, nil
}

func (u *fakeUpstream) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

// testEnv is the full stack minus real I/O: router, service, ingestor.
type testEnv struct {
	store    *countingStore
	upstream *fakeUpstream
	handler  http.Handler
}

func newTestEnv(t *testing.T, records int) *testEnv {
	t.Helper()

	store := newCountingStore()
	up := newFakeUpstream(records)
	ingestor := syncpkg.NewIngestor(config.UpstreamConfig{
		BaseURL:   "https://example.invalid/resource",
		APIKey:    "test-key",
		State:     "BIHAR",
		BatchSize: 10,
	}, up, store)

	svc := service.New(store, ingestor, service.Options{DefaultFinYear: "2024-2025"})
	ingestor.SetOnSyncCompleted(func(*models.SyncRun) { svc.InvalidateCache() })

	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	router := NewRouter(NewHandler(svc), NewChiMiddleware(cfg))

	return &testEnv{store: store, upstream: up, handler: router.Setup()}
}

func (e *testEnv) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v\nbody: %s", v, err, rec.Body.String())
	}
	return v
}
