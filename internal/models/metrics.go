// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Metrics is one upstream MGNREGA record. Fields charted by the dashboard
// are parsed into typed values (nil when absent or not numeric); every other
// upstream field is kept verbatim in Extra. JSON encoding merges both back
// into the flat upstream shape. A typed field is written with its upstream
// encoding ("0012" stays a string) unless its value was changed after
// parsing, in which case it is written as a JSON number.
type Metrics struct {
	TotalExpenditure           *float64
	TotalHouseholdsWorked      *float64
	TotalIndividualsWorked     *float64
	WomenPersondays            *float64
	CentralLiabilityPersondays *float64
	AverageWageRate            *float64
	AverageDaysOfEmployment    *float64
	HouseholdsCompleted100Days *float64
	Wages                      *float64

	Extra map[string]any

	// raw holds the upstream encoding of each parsed typed field.
	raw map[string]any
}

// typedField binds an upstream key to a Metrics field.
type typedField struct {
	key   string
	field func(*Metrics) **float64
}

var typedFields = []typedField{
	{"Total_Exp", func(m *Metrics) **float64 { return &m.TotalExpenditure }},
	{"Total_Households_Worked", func(m *Metrics) **float64 { return &m.TotalHouseholdsWorked }},
	{"Total_Individuals_Worked", func(m *Metrics) **float64 { return &m.TotalIndividualsWorked }},
	{"Women_Persondays", func(m *Metrics) **float64 { return &m.WomenPersondays }},
	{"Persondays_of_Central_Liability_so_far", func(m *Metrics) **float64 { return &m.CentralLiabilityPersondays }},
	{"Average_Wage_rate_per_day_per_person", func(m *Metrics) **float64 { return &m.AverageWageRate }},
	{"Average_days_of_employment_provided_per_Household", func(m *Metrics) **float64 { return &m.AverageDaysOfEmployment }},
	{"Total_No_of_HHs_completed_100_Days_of_Wage_Employment", func(m *Metrics) **float64 { return &m.HouseholdsCompleted100Days }},
	{"Wages", func(m *Metrics) **float64 { return &m.Wages }},
}

var typedKeys = func() map[string]int {
	idx := make(map[string]int, len(typedFields))
	for i, f := range typedFields {
		idx[f.key] = i
	}
	return idx
}()

// NewMetrics splits a raw upstream record into typed fields and Extra.
// The map itself is not retained.
func NewMetrics(raw map[string]any) Metrics {
	m := Metrics{Extra: make(map[string]any, len(raw))}
	for k, v := range raw {
		i, known := typedKeys[k]
		if known {
			if f, ok := ParseNumber(v); ok {
				*typedFields[i].field(&m) = &f
				if m.raw == nil {
					m.raw = make(map[string]any, len(typedFields))
				}
				m.raw[k] = v
				continue
			}
		}
		m.Extra[k] = v
	}
	return m
}

// Map returns the flat upstream representation.
func (m Metrics) Map() map[string]any {
	out := make(map[string]any, len(m.Extra)+len(typedFields))
	for k, v := range m.Extra {
		out[k] = v
	}
	for _, tf := range typedFields {
		p := *tf.field(&m)
		if p == nil {
			continue
		}
		if r, ok := m.raw[tf.key]; ok {
			if f, _ := ParseNumber(r); f == *p {
				out[tf.key] = r
				continue
			}
		}
		out[tf.key] = *p
	}
	return out
}

// IsEmpty reports whether no upstream field is present.
func (m Metrics) IsEmpty() bool {
	return len(m.Map()) == 0
}

func (m Metrics) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Map())
}

func (m *Metrics) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = NewMetrics(raw)
	return nil
}

// ParseNumber accepts the numeric encodings seen upstream: JSON numbers and
// decimal strings, optionally with thousands separators. "NA", "" and
// non-finite values are rejected.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(n), ",", "")
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
