// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

import "time"

// DistrictRef identifies a district.
type DistrictRef struct {
	DistrictCode string `json:"district_code"`
	DistrictName string `json:"district_name"`
}

// Meta is the projection served by GET /api/meta.
type Meta struct {
	FinYears  []string      `json:"fin_years"`
	Districts []DistrictRef `json:"districts"`
}

// DistrictTotals aggregates the charted metrics across a district's months.
// Sums skip months where the field is absent; AverageWageRate is the mean of
// the months that report it.
type DistrictTotals struct {
	TotalExpenditure           float64  `json:"total_expenditure"`
	TotalHouseholdsWorked      float64  `json:"total_households_worked"`
	WomenPersondays            float64  `json:"women_persondays"`
	CentralLiabilityPersondays float64  `json:"central_liability_persondays"`
	AverageWageRate            *float64 `json:"average_wage_rate,omitempty"`
}

// DistrictSummary describes the rows returned for a (district, year) pair.
// LastUpdated comes from the first row in month order.
type DistrictSummary struct {
	DistrictCode string         `json:"district_code"`
	DistrictName string         `json:"district_name"`
	FinYear      string         `json:"fin_year"`
	RecordsCount int            `json:"records_count"`
	FirstMonth   string         `json:"first_month"`
	LastMonth    string         `json:"last_month"`
	LastUpdated  time.Time      `json:"last_updated"`
	Totals       DistrictTotals `json:"totals"`
}

// DistrictDetail is the Query Service result for one district and year.
// Records are sorted by month ascending.
type DistrictDetail struct {
	Summary DistrictSummary
	Records []MetricRecord
}

// Summarize builds the summary for rows already sorted by month. It returns
// the zero summary for no rows.
func Summarize(districtCode, finYear string, records []MetricRecord) DistrictSummary {
	s := DistrictSummary{
		DistrictCode: districtCode,
		FinYear:      finYear,
		RecordsCount: len(records),
	}
	if len(records) == 0 {
		return s
	}

	first, last := records[0], records[len(records)-1]
	s.DistrictName = first.DistrictName
	s.FirstMonth = first.Month
	s.LastMonth = last.Month
	s.LastUpdated = first.LastUpdated

	var wageSum float64
	var wageN int
	for i := range records {
		m := records[i].Metrics
		s.Totals.TotalExpenditure += deref(m.TotalExpenditure)
		s.Totals.TotalHouseholdsWorked += deref(m.TotalHouseholdsWorked)
		s.Totals.WomenPersondays += deref(m.WomenPersondays)
		s.Totals.CentralLiabilityPersondays += deref(m.CentralLiabilityPersondays)
		if m.AverageWageRate != nil {
			wageSum += *m.AverageWageRate
			wageN++
		}
	}
	if wageN > 0 {
		avg := wageSum / float64(wageN)
		s.Totals.AverageWageRate = &avg
	}
	return s
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
