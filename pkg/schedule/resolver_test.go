package schedule

import (
	"testing"
	"time"

	"opsboard/models"
)

func dayPtr(d models.Day) *models.Day { return &d }

func datePtr(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestMatchesDayOrDate(t *testing.T) {
	tests := []struct {
		name   string
		day    *models.Day
		date   *time.Time
		filter Filter
		want   bool
	}{
		// No filter set: everything passes.
		{"no filter, bare record", nil, nil, Filter{}, true},
		{"no filter, recurring record", dayPtr(models.Monday), nil, Filter{}, true},
		{"ALL day filter is no filter", nil, datePtr("2025-03-01"), Filter{Day: models.DayAll}, true},

		// Day filter: matching or nil day passes, mismatched day does not.
		{"day filter matches", dayPtr(models.Monday), nil, Filter{Day: "MON"}, true},
		{"day filter mismatch excludes", dayPtr(models.Monday), nil, Filter{Day: "TUE"}, false},
		{"date-specific passes through day filter", nil, datePtr("2025-03-01"), Filter{Day: "FRI"}, true},
		{"bare record passes day filter", nil, nil, Filter{Day: "WED"}, true},

		// Date filter: on-or-after or nil date passes.
		{"date on filter day", nil, datePtr("2025-06-10"), Filter{Date: datePtr("2025-06-10")}, true},
		{"date after filter", nil, datePtr("2025-06-11"), Filter{Date: datePtr("2025-06-10")}, true},
		{"date before filter excludes", nil, datePtr("2025-06-09"), Filter{Date: datePtr("2025-06-10")}, false},
		{"day-recurring bypasses date filter", dayPtr(models.Monday), nil, Filter{Date: datePtr("2025-06-10")}, true},
		{"bare record passes date filter", nil, nil, Filter{Date: datePtr("2025-06-10")}, true},

		// Record with both fields set: day wins, date is ignored for
		// scheduling, so the stale date does not matter.
		{"both set, day matches", dayPtr(models.Friday), datePtr("2020-01-01"), Filter{Day: "FRI"}, true},
		{"both set, day mismatch", dayPtr(models.Friday), datePtr("2020-01-01"), Filter{Day: "SAT"}, false},
		{"both set, stale date passes date filter", dayPtr(models.Friday), datePtr("2020-01-01"),
			Filter{Date: datePtr("2025-06-10")}, true},
		{"both set, stale date passes both filters", dayPtr(models.Friday), datePtr("2020-01-01"),
			Filter{Day: "FRI", Date: datePtr("2025-06-10")}, true},

		// Both filters set: each condition applies independently.
		{"both filters, recurring matches day", dayPtr(models.Monday), nil,
			Filter{Day: "MON", Date: datePtr("2025-06-10")}, true},
		{"both filters, recurring wrong day", dayPtr(models.Monday), nil,
			Filter{Day: "TUE", Date: datePtr("2025-06-10")}, false},
		{"both filters, date-specific in range", nil, datePtr("2025-06-12"),
			Filter{Day: "TUE", Date: datePtr("2025-06-10")}, true},
		{"both filters, date-specific out of range", nil, datePtr("2025-06-01"),
			Filter{Day: "TUE", Date: datePtr("2025-06-10")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesDayOrDate(tt.day, tt.date, tt.filter)
			if got != tt.want {
				t.Errorf("MatchesDayOrDate(%v, %v, %+v) = %v, want %v",
					tt.day, tt.date, tt.filter, got, tt.want)
			}
		})
	}
}

func TestMatchesDayOrDate_RecurringAlwaysPassesDateFilters(t *testing.T) {
	// Property: any record with day set passes any date filter,
	// regardless of its own date value.
	days := []models.Day{models.Monday, models.Wednesday, models.Sunday}
	dates := []*time.Time{nil, datePtr("1990-01-01"), datePtr("2030-12-31")}
	filters := []*time.Time{datePtr("2025-01-01"), datePtr("2025-06-10"), datePtr("2099-01-01")}

	for _, d := range days {
		for _, recDate := range dates {
			for _, fd := range filters {
				if !MatchesDayOrDate(dayPtr(d), recDate, Filter{Date: fd}) {
					t.Errorf("day-recurring record %s (date %v) excluded by date filter %v", d, recDate, fd)
				}
			}
		}
	}
}

func TestFilterRecords(t *testing.T) {
	type rec struct {
		name string
		day  *models.Day
		date *time.Time
	}
	records := []rec{
		{"recurring with stale date", dayPtr(models.Friday), datePtr("2020-01-01")},
		{"dated before window", nil, datePtr("2025-06-09")},
		{"dated inside window", nil, datePtr("2025-06-11")},
	}

	got := FilterRecords(records,
		func(r rec) *models.Day { return r.day },
		func(r rec) *time.Time { return r.date },
		Filter{Date: datePtr("2025-06-10")})

	if len(got) != 2 {
		t.Fatalf("kept %d records, want 2: %+v", len(got), got)
	}
	if got[0].name != "recurring with stale date" {
		t.Errorf("got[0] = %q; the recurring record must survive the date filter", got[0].name)
	}
	if got[1].name != "dated inside window" {
		t.Errorf("got[1] = %q, want the in-window dated record", got[1].name)
	}
}

func TestGroupKey(t *testing.T) {
	now := time.Date(2025, 6, 10, 15, 30, 0, 0, time.UTC)

	t.Run("date-specific keys on own date", func(t *testing.T) {
		d := time.Date(2025, 3, 1, 9, 45, 0, 0, time.UTC)
		if got := GroupKey(&d, now); got != "2025-03-01" {
			t.Errorf("GroupKey = %q, want 2025-03-01", got)
		}
	})

	t.Run("day-recurring keys on today", func(t *testing.T) {
		if got := GroupKey(nil, now); got != "2025-06-10" {
			t.Errorf("GroupKey = %q, want 2025-06-10", got)
		}
	})

	t.Run("idempotent for a fixed now", func(t *testing.T) {
		d := time.Date(2024, 11, 5, 0, 0, 0, 0, time.UTC)
		first := GroupKey(&d, now)
		second := GroupKey(&d, now)
		if first != second {
			t.Errorf("GroupKey not idempotent: %q vs %q", first, second)
		}
		if GroupKey(nil, now) != GroupKey(nil, now) {
			t.Error("GroupKey(nil) not idempotent")
		}
	})
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 6, 10, 23, 59, 59, 999, time.UTC)
	got := StartOfDay(in)
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
