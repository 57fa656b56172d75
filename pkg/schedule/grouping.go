package schedule

import (
	"sort"
	"time"
)

// Group is one display group of records sharing a calendar day.
type Group[T any] struct {
	Key     string `json:"key"`     // "2006-01-02"
	Heading string `json:"heading"` // "June 10, 2025 - Today"
	Records []T    `json:"records"`
}

// GroupByDate buckets an already-filtered list by GroupKey and
// returns the groups sorted ascending by date. Within a group the
// input order is preserved; the underlying query's ordering is the
// display ordering. Empty input yields an empty (non-nil) slice.
func GroupByDate[T any](records []T, date func(T) *time.Time, now time.Time) []Group[T] {
	buckets := map[string][]T{}
	for _, rec := range records {
		key := GroupKey(date(rec), now)
		buckets[key] = append(buckets[key], rec)
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	// Keys are ISO dates, so lexicographic order is date order.
	sort.Strings(keys)

	groups := make([]Group[T], 0, len(keys))
	for _, key := range keys {
		groups = append(groups, Group[T]{
			Key:     key,
			Heading: Heading(key, now),
			Records: buckets[key],
		})
	}
	return groups
}

// Heading renders a group key as "January 2, 2006", suffixed with
// " - Today" or " - Tomorrow" when the key is the current or next
// calendar day.
func Heading(key string, now time.Time) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	h := t.Format("January 2, 2006")
	switch key {
	case now.Format("2006-01-02"):
		h += " - Today"
	case now.AddDate(0, 0, 1).Format("2006-01-02"):
		h += " - Tomorrow"
	}
	return h
}
