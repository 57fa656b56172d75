package models

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newListRequest(query string) *ListParams {
	r := httptest.NewRequest("GET", "/things?"+query, nil)
	p, err := ParseListParams(r, map[string]string{"supplierId": "supplier_id"})
	if err != nil {
		panic(err)
	}
	return p
}

func TestParseListParamsDefaults(t *testing.T) {
	p := newListRequest("")
	if p.Page != 1 {
		t.Errorf("Page = %d, want 1", p.Page)
	}
	if p.Limit != defaultLimit {
		t.Errorf("Limit = %d, want %d", p.Limit, defaultLimit)
	}
	if p.Order != "asc" {
		t.Errorf("Order = %q, want asc", p.Order)
	}
	if p.Day != "" || p.Date != nil || p.Cursor != nil {
		t.Errorf("expected no day/date/cursor filters, got %+v", p)
	}
}

func TestParseListParamsValidation(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name    string
		query   string
		wantErr bool
		check   func(t *testing.T, p *ListParams)
	}{
		{
			name:    "page zero rejected",
			query:   "page=0",
			wantErr: true,
		},
		{
			name:    "page non-numeric rejected",
			query:   "page=abc",
			wantErr: true,
		},
		{
			name:    "limit negative rejected",
			query:   "limit=-5",
			wantErr: true,
		},
		{
			name:  "limit clamped to max",
			query: "limit=10000",
			check: func(t *testing.T, p *ListParams) {
				if p.Limit != maxLimit {
					t.Errorf("Limit = %d, want %d", p.Limit, maxLimit)
				}
			},
		},
		{
			name:  "day uppercased",
			query: "day=wed",
			check: func(t *testing.T, p *ListParams) {
				if p.Day != "WED" {
					t.Errorf("Day = %q, want WED", p.Day)
				}
			},
		},
		{
			name:  "day ALL kept as sentinel",
			query: "day=ALL",
			check: func(t *testing.T, p *ListParams) {
				if p.Day != DayAll {
					t.Errorf("Day = %q, want %q", p.Day, DayAll)
				}
			},
		},
		{
			name:    "unknown day rejected",
			query:   "day=FUNDAY",
			wantErr: true,
		},
		{
			name:  "date normalized to start of day",
			query: "date=2026-03-15",
			check: func(t *testing.T, p *ListParams) {
				if p.Date == nil {
					t.Fatal("Date not set")
				}
				want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
				if !p.Date.Equal(want) {
					t.Errorf("Date = %v, want %v", *p.Date, want)
				}
			},
		},
		{
			name:    "garbage date rejected",
			query:   "date=15-03-2026",
			wantErr: true,
		},
		{
			name:    "garbage cursor rejected",
			query:   "cursor=not-base64!!",
			wantErr: true,
		},
		{
			name:  "fk filter parsed",
			query: "supplierId=" + id.String(),
			check: func(t *testing.T, p *ListParams) {
				if got := p.Filters["supplier_id"]; got != id {
					t.Errorf("Filters[supplier_id] = %v, want %v", got, id)
				}
			},
		},
		{
			name:  "fk ALL means no filter",
			query: "supplierId=ALL",
			check: func(t *testing.T, p *ListParams) {
				if len(p.Filters) != 0 {
					t.Errorf("Filters = %v, want empty", p.Filters)
				}
			},
		},
		{
			name:    "malformed fk uuid rejected",
			query:   "supplierId=not-a-uuid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/things?"+tt.query, nil)
			p, err := ParseListParams(r, map[string]string{"supplierId": "supplier_id"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.check != nil {
				tt.check(t, p)
			}
		})
	}
}

func TestMeta(t *testing.T) {
	two, four := 2, 4

	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  PageMeta
	}{
		{
			name:  "middle page",
			page: 3, limit: 10, total: 95,
			want: PageMeta{TotalRecords: 95, CurrentPage: 3, TotalPages: 10, Limit: 10, NextPage: &four, PrevPage: &two},
		},
		{
			name:  "single page",
			page: 1, limit: 20, total: 5,
			want: PageMeta{TotalRecords: 5, CurrentPage: 1, TotalPages: 1, Limit: 20},
		},
		{
			name:  "empty result",
			page: 1, limit: 20, total: 0,
			want: PageMeta{TotalRecords: 0, CurrentPage: 1, TotalPages: 0, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ListParams{Page: tt.page, Limit: tt.limit}
			got := p.Meta(tt.total)
			if got.TotalRecords != tt.want.TotalRecords ||
				got.CurrentPage != tt.want.CurrentPage ||
				got.TotalPages != tt.want.TotalPages ||
				got.Limit != tt.want.Limit {
				t.Errorf("Meta(%d) = %+v, want %+v", tt.total, got, tt.want)
			}
			if (got.NextPage == nil) != (tt.want.NextPage == nil) {
				t.Errorf("NextPage = %v, want %v", got.NextPage, tt.want.NextPage)
			} else if got.NextPage != nil && *got.NextPage != *tt.want.NextPage {
				t.Errorf("NextPage = %d, want %d", *got.NextPage, *tt.want.NextPage)
			}
			if (got.PrevPage == nil) != (tt.want.PrevPage == nil) {
				t.Errorf("PrevPage = %v, want %v", got.PrevPage, tt.want.PrevPage)
			} else if got.PrevPage != nil && *got.PrevPage != *tt.want.PrevPage {
				t.Errorf("PrevPage = %d, want %d", *got.PrevPage, *tt.want.PrevPage)
			}
		})
	}
}

func TestCursorRoundTrip(t *testing.T) {
	createdAt := time.Date(2026, 8, 31, 14, 30, 0, 123456789, time.UTC)

	t.Run("dated position", func(t *testing.T) {
		date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
		got, err := DecodeCursor(EncodeCursor(&date, createdAt))
		if err != nil {
			t.Fatalf("DecodeCursor: %v", err)
		}
		if got.Date == nil || !got.Date.Equal(date) {
			t.Errorf("Date = %v, want %v", got.Date, date)
		}
		if !got.CreatedAt.Equal(createdAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, createdAt)
		}
	})

	t.Run("undated block position", func(t *testing.T) {
		// nil date marks a page boundary inside the day-recurring
		// block; created_at must survive so the next page resumes
		// mid-block.
		got, err := DecodeCursor(EncodeCursor(nil, createdAt))
		if err != nil {
			t.Fatalf("DecodeCursor: %v", err)
		}
		if got.Date != nil {
			t.Errorf("Date = %v, want nil", got.Date)
		}
		if !got.CreatedAt.Equal(createdAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, createdAt)
		}
	})

	t.Run("missing separator rejected", func(t *testing.T) {
		if _, err := DecodeCursor("bm8tc2VwYXJhdG9y"); err == nil {
			t.Error("expected error for cursor without separator")
		}
	})
}
