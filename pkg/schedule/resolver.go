// Package schedule decides how day-recurring and date-specific
// records are filtered and grouped for display.
//
// A record is day-recurring when its Day field is set; its Date is
// then ignored for scheduling even if present. Otherwise it is
// date-specific, governed by Date.
package schedule

import (
	"time"

	"opsboard/models"
)

// Filter is a day/date query filter. Day is "" (unset), models.DayAll,
// or a day-of-week value; Date filters inclusively from the start of
// that calendar day.
type Filter struct {
	Day  string
	Date *time.Time
}

// MatchesDayOrDate reports whether a record with the given day/date
// fields passes the filter.
//
// The inclusion rules are deliberately permissive in one direction:
// a day filter never hides date-specific records (nil day passes
// unconditionally) and a date filter never hides day-recurring
// records. A record whose day is set is day-recurring no matter what
// its date column holds, so the date filter skips it entirely; a
// stale date on a recurring record must not matter. A record whose
// day is set but differs from the day filter is excluded. When both
// filters are set the two conditions are ANDed. No filter set means
// everything passes.
func MatchesDayOrDate(day *models.Day, date *time.Time, f Filter) bool {
	if f.Day != "" && f.Day != models.DayAll {
		if day != nil && string(*day) != f.Day {
			return false
		}
	}
	if f.Date != nil && day == nil {
		if date != nil && date.Before(StartOfDay(*f.Date)) {
			return false
		}
	}
	return true
}

// FilterRecords keeps the records that pass the filter, preserving
// order. The grouped views load search/FK-filtered rows and run the
// day/date rules here, so one function owns the inclusion semantics.
func FilterRecords[T any](records []T, day func(T) *models.Day, date func(T) *time.Time, f Filter) []T {
	kept := make([]T, 0, len(records))
	for _, rec := range records {
		if MatchesDayOrDate(day(rec), date(rec), f) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// GroupKey computes the calendar-day key a record is grouped under.
// Date-specific records key on their own date. Day-recurring records
// (nil date) key on today: they surface in the current day's group no
// matter which weekday they recur on. That is a deliberate
// simplification carried over from the original behavior, not a bug.
func GroupKey(date *time.Time, now time.Time) string {
	if date != nil {
		return date.Format("2006-01-02")
	}
	return now.Format("2006-01-02")
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
