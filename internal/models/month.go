// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package models

import (
	"cmp"
	"slices"
	"strings"
)

// fiscalMonths lists months in Indian fiscal year order (April to March).
var fiscalMonths = [12]string{
	"april", "may", "june", "july", "august", "september",
	"october", "november", "december", "january", "february", "march",
}

// FiscalMonthIndex returns 1 for April through 12 for March, matching full
// names and three-letter abbreviations case-insensitively ("Sept" too).
// Unknown labels return 0.
func FiscalMonthIndex(label string) int {
	s := strings.ToLower(strings.TrimSpace(label))
	if len(s) < 3 {
		return 0
	}
	for i, name := range fiscalMonths {
		if s == name || (len(s) <= len(name) && strings.HasPrefix(name, s)) {
			return i + 1
		}
	}
	return 0
}

// CompareMonths orders month labels by fiscal position. Unrecognised labels
// sort after recognised ones and among themselves lexicographically.
func CompareMonths(a, b string) int {
	ia, ib := FiscalMonthIndex(a), FiscalMonthIndex(b)
	switch {
	case ia != 0 && ib != 0:
		return cmp.Compare(ia, ib)
	case ia != 0:
		return -1
	case ib != 0:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// SortByMonth sorts records in place by month ascending, stable for equal
// months.
func SortByMonth(records []MetricRecord) {
	slices.SortStableFunc(records, func(a, b MetricRecord) int {
		return CompareMonths(a.Month, b.Month)
	})
}

// SortByDistrictMonth sorts records by district name, then district code,
// then month.
func SortByDistrictMonth(records []MetricRecord) {
	slices.SortStableFunc(records, func(a, b MetricRecord) int {
		if c := strings.Compare(a.DistrictName, b.DistrictName); c != 0 {
			return c
		}
		if c := strings.Compare(a.DistrictCode, b.DistrictCode); c != 0 {
			return c
		}
		return CompareMonths(a.Month, b.Month)
	})
}
