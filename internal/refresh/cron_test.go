// Rozgar - MGNREGA District Employment Metrics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rozgar

package refresh

import (
	"slices"
	"testing"
	"time"
)

func TestParseCron(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		expr    string
		wantErr bool
		check   func(*CronExpression) bool
	}{
		{name: "yearly default", expr: "0 3 1 1 *", check: func(c *CronExpression) bool {
			return slices.Equal(c.Minutes, []int{0}) && slices.Equal(c.Hours, []int{3}) &&
				slices.Equal(c.DaysOfMonth, []int{1}) && slices.Equal(c.Months, []int{1}) &&
				len(c.DaysOfWeek) == 7
		}},
		{name: "step", expr: "*/15 * * * *", check: func(c *CronExpression) bool {
			return slices.Equal(c.Minutes, []int{0, 15, 30, 45})
		}},
		{name: "range step", expr: "0 8-18/5 * * *", check: func(c *CronExpression) bool {
			return slices.Equal(c.Hours, []int{8, 13, 18})
		}},
		{name: "list unsorted", expr: "0 0 * 10,4,1 *", check: func(c *CronExpression) bool {
			return slices.Equal(c.Months, []int{1, 4, 10})
		}},
		{name: "sunday alias", expr: "0 0 * * 0,7", check: func(c *CronExpression) bool {
			return slices.Equal(c.DaysOfWeek, []int{0})
		}},
		{name: "too few fields", expr: "0 3 1 1", wantErr: true},
		{name: "minute out of range", expr: "60 * * * *", wantErr: true},
		{name: "reversed range", expr: "0 10-2 * * *", wantErr: true},
		{name: "zero step", expr: "*/0 * * * *", wantErr: true},
		{name: "garbage", expr: "a b c d e", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ParseCron(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCron(%q) expected error", tt.expr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCron(%q): %v", tt.expr, err)
			}
			if !tt.check(c) {
				t.Errorf("ParseCron(%q) = %+v", tt.expr, c)
			}
		})
	}
}

func TestNextRun(t *testing.T) {
	t.Parallel()

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	tests := []struct {
		name  string
		expr  string
		after time.Time
		loc   *time.Location
		want  time.Time
	}{
		{
			name:  "yearly rolls to next year",
			expr:  "0 3 1 1 *",
			after: time.Date(2025, 3, 15, 12, 0, 0, 0, kolkata),
			loc:   kolkata,
			want:  time.Date(2026, 1, 1, 3, 0, 0, 0, kolkata),
		},
		{
			name:  "strictly after exact match",
			expr:  "0 3 1 1 *",
			after: time.Date(2026, 1, 1, 3, 0, 0, 0, kolkata),
			loc:   kolkata,
			want:  time.Date(2027, 1, 1, 3, 0, 0, 0, kolkata),
		},
		{
			name:  "same day later hour",
			expr:  "30 14 * * *",
			after: time.Date(2025, 6, 1, 9, 10, 0, 0, time.UTC),
			want:  time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "weekday only",
			expr:  "0 9 * * 1",
			after: time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), // Wednesday
			want:  time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC),
		},
		{
			name:  "day of month or weekday",
			expr:  "0 0 15 * 1",
			after: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), // Tuesday
			want:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "evaluated in location",
			expr:  "0 3 * * *",
			after: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), // 05:30 IST
			loc:   kolkata,
			want:  time.Date(2025, 1, 2, 3, 0, 0, 0, kolkata),
		},
		{
			name:  "never fires",
			expr:  "0 0 31 2 *",
			after: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := ParseCron(tt.expr)
			if err != nil {
				t.Fatalf("ParseCron: %v", err)
			}
			got := c.NextRun(tt.after, tt.loc)
			if !got.Equal(tt.want) {
				t.Errorf("NextRun(%v) = %v, want %v", tt.after, got, tt.want)
			}
		})
	}
}
