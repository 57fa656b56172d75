package handlers

import (
	"testing"
	"time"

	"opsboard/models"
)

func recurringTask(day models.Day, createdAt time.Time) models.Task {
	return models.Task{Title: "refill", Day: &day, CreatedAt: createdAt}
}

func datedTask(date time.Time, createdAt time.Time) models.Task {
	jt := models.JSONTime(date)
	return models.Task{Title: "deliver", Date: &jt, CreatedAt: createdAt}
}

func TestTaskPage(t *testing.T) {
	base := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	t.Run("undated block larger than one page", func(t *testing.T) {
		// Page size 20 with more than 20 day-recurring tasks stored;
		// the limit+1 fetch hands us 21 rows. The cursor has to point
		// into the undated block so the overflow rows stay reachable.
		var tasks []models.Task
		for i := 0; i < 21; i++ {
			tasks = append(tasks, recurringTask(models.Monday, base.Add(time.Duration(i)*time.Minute)))
		}

		page, next := taskPage(tasks, 20)
		if len(page) != 20 {
			t.Fatalf("page size = %d, want 20", len(page))
		}
		if next == "" {
			t.Fatal("expected a next cursor")
		}
		c, err := models.DecodeCursor(next)
		if err != nil {
			t.Fatalf("DecodeCursor: %v", err)
		}
		if c.Date != nil {
			t.Errorf("cursor Date = %v, want nil (still inside the undated block)", c.Date)
		}
		want := page[len(page)-1].CreatedAt
		if !c.CreatedAt.Equal(want) {
			t.Errorf("cursor CreatedAt = %v, want %v", c.CreatedAt, want)
		}
	})

	t.Run("page ends on a dated row", func(t *testing.T) {
		date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
		tasks := []models.Task{
			recurringTask(models.Friday, base),
			datedTask(date, base.Add(time.Minute)),
			datedTask(date.AddDate(0, 0, 1), base.Add(2*time.Minute)),
		}

		page, next := taskPage(tasks, 2)
		if len(page) != 2 {
			t.Fatalf("page size = %d, want 2", len(page))
		}
		c, err := models.DecodeCursor(next)
		if err != nil {
			t.Fatalf("DecodeCursor: %v", err)
		}
		if c.Date == nil || !c.Date.Equal(date) {
			t.Errorf("cursor Date = %v, want %v", c.Date, date)
		}
	})

	t.Run("final page has no cursor", func(t *testing.T) {
		tasks := []models.Task{recurringTask(models.Monday, base)}
		page, next := taskPage(tasks, 20)
		if len(page) != 1 || next != "" {
			t.Errorf("page = %d rows, cursor %q; want 1 row and no cursor", len(page), next)
		}
	})
}
