// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Upstream field names hoisted onto MetricRecord.
const (
	FieldDistrictCode = "district_code"
	FieldDistrictName = "district_name"
	FieldFinYear      = "fin_year"
	FieldMonth        = "month"
)

// ErrMissingKeyField is returned for upstream records that cannot be keyed.
var ErrMissingKeyField = errors.New("record is missing a key field")

// RecordKey is the natural key of a MetricRecord.
type RecordKey struct {
	DistrictCode string
	FinYear      string
	Month        string
}

func (k RecordKey) String() string {
	return k.DistrictCode + "/" + k.FinYear + "/" + k.Month
}

// MetricRecord is one month of scheme statistics for one district. At most
// one exists per RecordKey; ingestion overwrites it in place.
type MetricRecord struct {
	DistrictCode string    `json:"district_code"`
	DistrictName string    `json:"district_name"`
	FinYear      string    `json:"fin_year"`
	Month        string    `json:"month"`
	Metrics      Metrics   `json:"metrics"`
	LastUpdated  time.Time `json:"last_updated"`
}

// Key returns the natural key.
func (r *MetricRecord) Key() RecordKey {
	return RecordKey{DistrictCode: r.DistrictCode, FinYear: r.FinYear, Month: r.Month}
}

// RecordFromUpstream hoists the key fields out of a raw upstream record and
// keeps the full record as Metrics. fallbackYear is used when the record
// omits fin_year, which the upstream filter already pins.
func RecordFromUpstream(raw map[string]any, fallbackYear string, now time.Time) (MetricRecord, error) {
	rec := MetricRecord{
		DistrictCode: stringField(raw, FieldDistrictCode),
		DistrictName: stringField(raw, FieldDistrictName),
		FinYear:      stringField(raw, FieldFinYear),
		Month:        stringField(raw, FieldMonth),
		Metrics:      NewMetrics(raw),
		LastUpdated:  now.UTC(),
	}
	if rec.FinYear == "" {
		rec.FinYear = fallbackYear
	}
	switch {
	case rec.DistrictCode == "":
		return rec, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldDistrictCode)
	case rec.Month == "":
		return rec, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldMonth)
	case rec.FinYear == "":
		return rec, fmt.Errorf("%w: %s", ErrMissingKeyField, FieldFinYear)
	}
	return rec, nil
}

// stringField renders a scalar upstream value as a trimmed string. District
// codes arrive as strings or bare numbers depending on the resource version.
func stringField(raw map[string]any, key string) string {
	switch v := raw[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// DedupeByKey keeps the last record for each natural key, in order of first
// appearance. A single upsert batch must not touch the same row twice.
func DedupeByKey(records []MetricRecord) []MetricRecord {
	pos := make(map[RecordKey]int, len(records))
	out := make([]MetricRecord, 0, len(records))
	for i := range records {
		k := records[i].Key()
		if j, ok := pos[k]; ok {
			out[j] = records[i]
			continue
		}
		pos[k] = len(out)
		out = append(out, records[i])
	}
	return out
}
