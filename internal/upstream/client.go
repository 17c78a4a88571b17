// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/rozgar/internal/config"
	"github.com/tomtom215/rozgar/internal/logging"
	"github.com/tomtom215/rozgar/internal/metrics"
)

// maxErrorBodySize limits how much of a failed response is kept for the error message.
const maxErrorBodySize = 64 * 1024

// ErrRateLimited is returned when the resource keeps answering 429 after
// all configured retries.
var ErrRateLimited = errors.New("upstream rate limit exceeded")

// Page is one batch of raw upstream records.
type Page struct {
	Total   int
	Records []map[string]any
}

// Client fetches pages of MGNREGA records for the configured state.
type Client interface {
	FetchPage(ctx context.Context, finYear string, offset, limit int) (*Page, error)
}

// HTTPClient is the net/http implementation of Client.
type HTTPClient struct {
	baseURL        string
	apiKey         string
	state          string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewHTTPClient creates a client for the resource described by cfg.
func NewHTTPClient(cfg config.UpstreamConfig) *HTTPClient {
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		state:   cfg.State,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter:        rate.NewLimiter(limit, 1),
		maxRetries:     cfg.RetryAttempts,
		retryBaseDelay: time.Second,
	}
}

// FetchPage requests one batch starting at offset.
func (c *HTTPClient) FetchPage(ctx context.Context, finYear string, offset, limit int) (*Page, error) {
	reqURL, err := c.pageURL(finYear, offset, limit)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequestWithRateLimit(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("fetch offset %d: %w", offset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("fetch offset %d: status %d: %s", offset, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	page, err := decodePage(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode offset %d: %w", offset, err)
	}
	return page, nil
}

func (c *HTTPClient) pageURL(finYear string, offset, limit int) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid upstream base URL: %w", err)
	}
	params := u.Query()
	params.Set("api-key", c.apiKey)
	params.Set("format", "json")
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("filters[state_name]", c.state)
	params.Set("filters[fin_year]", finYear)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// doRequestWithRateLimit waits for the pacing limiter and retries HTTP 429
// responses with exponential backoff (1s, 2s, 4s...) unless Retry-After says otherwise.
func (c *HTTPClient) doRequestWithRateLimit(ctx context.Context, reqURL string) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		start := time.Now()
		resp, err := c.client.Do(req)
		if err != nil {
			metrics.RecordUpstreamRequest(0, time.Since(start))
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}
		metrics.RecordUpstreamRequest(resp.StatusCode, time.Since(start))

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}
		_ = resp.Body.Close()

		if attempt >= c.maxRetries {
			return nil, fmt.Errorf("%w after %d retries (HTTP 429)", ErrRateLimited, c.maxRetries)
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
				delay = time.Duration(seconds) * time.Second
			}
		}
		logging.Ctx(ctx).Warn().Int("attempt", attempt+1).Dur("delay", delay).Msg("Upstream rate limited, backing off")

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}
}

// pageResponse is the subset of the data.gov.in envelope we read.
type pageResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Total   any              `json:"total"`
	Records []map[string]any `json:"records"`
}

func decodePage(r io.Reader) (*Page, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body pageResponse
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if strings.EqualFold(body.Status, "error") {
		return nil, fmt.Errorf("upstream error: %s", body.Message)
	}

	total, err := parseTotal(body.Total)
	if err != nil {
		return nil, err
	}
	return &Page{Total: total, Records: body.Records}, nil
}

// parseTotal accepts the total as a JSON number or a numeric string. A
// missing total is reported as zero.
func parseTotal(v any) (int, error) {
	switch t := v.(type) {
	case nil:
		return 0, nil
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			f, ferr := t.Float64()
			if ferr != nil {
				return 0, fmt.Errorf("invalid total %q", t.String())
			}
			return int(f), nil
		}
		return int(n), nil
	case float64:
		return int(t), nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid total %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("invalid total type %T", v)
	}
}

// readBodyForError reads at most maxErrorBodySize bytes of a failed response.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
