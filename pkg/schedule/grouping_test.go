package schedule

import (
	"testing"
	"time"
)

type row struct {
	name string
	date *time.Time
}

func rowDate(r row) *time.Time { return r.date }

func TestGroupByDate(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	t.Run("empty input yields empty output", func(t *testing.T) {
		groups := GroupByDate(nil, rowDate, now)
		if groups == nil || len(groups) != 0 {
			t.Errorf("GroupByDate(nil) = %v, want empty slice", groups)
		}
	})

	t.Run("groups sorted ascending for unordered input", func(t *testing.T) {
		rows := []row{
			{"c", datePtr("2025-06-12")},
			{"a", datePtr("2025-06-10")},
			{"d", datePtr("2025-06-20")},
			{"b", datePtr("2025-06-11")},
		}
		groups := GroupByDate(rows, rowDate, now)
		if len(groups) != 4 {
			t.Fatalf("got %d groups, want 4", len(groups))
		}
		wantKeys := []string{"2025-06-10", "2025-06-11", "2025-06-12", "2025-06-20"}
		for i, key := range wantKeys {
			if groups[i].Key != key {
				t.Errorf("group %d key = %q, want %q", i, groups[i].Key, key)
			}
		}
	})

	t.Run("within-group order preserved", func(t *testing.T) {
		rows := []row{
			{"first", datePtr("2025-06-12")},
			{"second", datePtr("2025-06-12")},
			{"third", datePtr("2025-06-12")},
		}
		groups := GroupByDate(rows, rowDate, now)
		if len(groups) != 1 {
			t.Fatalf("got %d groups, want 1", len(groups))
		}
		for i, want := range []string{"first", "second", "third"} {
			if groups[0].Records[i].name != want {
				t.Errorf("record %d = %q, want %q", i, groups[0].Records[i].name, want)
			}
		}
	})

	t.Run("recurring rows land in today's group", func(t *testing.T) {
		rows := []row{
			{"recurring", nil},
			{"dated", datePtr("2025-06-11")},
		}
		groups := GroupByDate(rows, rowDate, now)
		if len(groups) != 2 {
			t.Fatalf("got %d groups, want 2", len(groups))
		}
		if groups[0].Key != "2025-06-10" || groups[0].Records[0].name != "recurring" {
			t.Errorf("today's group = %+v, want the recurring row under 2025-06-10", groups[0])
		}
	})
}

func TestHeading(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		key  string
		want string
	}{
		{"2025-06-10", "June 10, 2025 - Today"},
		{"2025-06-11", "June 11, 2025 - Tomorrow"},
		{"2025-06-12", "June 12, 2025"},
		{"2025-03-01", "March 1, 2025"},
	}
	for _, tt := range tests {
		if got := Heading(tt.key, now); got != tt.want {
			t.Errorf("Heading(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
