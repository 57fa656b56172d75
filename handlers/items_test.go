package handlers

import (
	"testing"

	"github.com/google/uuid"
)

type line struct {
	ID  uuid.UUID
	Qty float64
}

func lineID(l line) uuid.UUID { return l.ID }

func TestDiffItems(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("resubmit two of three plus one new", func(t *testing.T) {
		existing := []uuid.UUID{a, b, c}
		submitted := []line{
			{ID: a, Qty: 5},
			{ID: b, Qty: 7},
			{Qty: 2}, // no id: new line
		}
		diff := diffItems(existing, submitted, lineID)

		if len(diff.toUpdate) != 2 {
			t.Errorf("toUpdate = %d rows, want 2", len(diff.toUpdate))
		}
		if len(diff.toInsert) != 1 {
			t.Errorf("toInsert = %d rows, want 1", len(diff.toInsert))
		}
		if len(diff.toDelete) != 1 || diff.toDelete[0] != c {
			t.Errorf("toDelete = %v, want [%s]", diff.toDelete, c)
		}
	})

	t.Run("empty submission deletes everything", func(t *testing.T) {
		diff := diffItems([]uuid.UUID{a, b}, nil, lineID)
		if len(diff.toUpdate) != 0 || len(diff.toInsert) != 0 {
			t.Errorf("expected no updates or inserts, got %+v", diff)
		}
		if len(diff.toDelete) != 2 {
			t.Errorf("toDelete = %d rows, want 2", len(diff.toDelete))
		}
	})

	t.Run("all new lines against empty parent", func(t *testing.T) {
		diff := diffItems(nil, []line{{Qty: 1}, {Qty: 2}}, lineID)
		if len(diff.toInsert) != 2 {
			t.Errorf("toInsert = %d rows, want 2", len(diff.toInsert))
		}
		if len(diff.toUpdate) != 0 || len(diff.toDelete) != 0 {
			t.Errorf("expected inserts only, got %+v", diff)
		}
	})

	t.Run("unknown id treated as insert", func(t *testing.T) {
		stranger := uuid.New()
		diff := diffItems([]uuid.UUID{a}, []line{{ID: stranger, Qty: 1}}, lineID)
		if len(diff.toInsert) != 1 {
			t.Errorf("toInsert = %d rows, want 1", len(diff.toInsert))
		}
		if len(diff.toDelete) != 1 || diff.toDelete[0] != a {
			t.Errorf("toDelete = %v, want [%s]", diff.toDelete, a)
		}
	})

	t.Run("resubmitting everything changes nothing", func(t *testing.T) {
		diff := diffItems([]uuid.UUID{a, b}, []line{{ID: a}, {ID: b}}, lineID)
		if len(diff.toUpdate) != 2 || len(diff.toInsert) != 0 || len(diff.toDelete) != 0 {
			t.Errorf("expected updates only, got %+v", diff)
		}
	})
}
