package models

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListParams is the parsed filter state of a list request. It is
// built once per request at the validation boundary; everything after
// that point composes predicates and never errors.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	SortBy string
	Order  string // "asc" or "desc"

	// Day is "" (unset), DayAll, or a valid Day value.
	Day string
	// Date filters inclusively from the start of that calendar day.
	Date *time.Time
	// Cursor is the decoded keyset position for cursor-paginated lists.
	Cursor *Cursor

	// Filters holds foreign-key equality filters keyed by column name.
	Filters map[string]uuid.UUID
}

// ParseListParams reads and validates the common list query
// parameters. fkParams maps query parameter names (e.g. "supplierId")
// to column names (e.g. "supplier_id"); values that are present, not
// "ALL", and parse as UUIDs become equality filters, anything else
// that is present but malformed is a client error.
func ParseListParams(r *http.Request, fkParams map[string]string) (*ListParams, error) {
	q := r.URL.Query()

	p := &ListParams{
		Page:    1,
		Limit:   defaultLimit,
		Search:  strings.TrimSpace(q.Get("search")),
		SortBy:  q.Get("sortBy"),
		Order:   strings.ToLower(q.Get("order")),
		Filters: map[string]uuid.UUID{},
	}

	if s := q.Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page %q", s)
		}
		p.Page = n
	}
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid limit %q", s)
		}
		if n > maxLimit {
			n = maxLimit
		}
		p.Limit = n
	}
	if p.Order != "desc" {
		p.Order = "asc"
	}

	if s := q.Get("day"); s != "" {
		day := strings.ToUpper(s)
		if day != DayAll && !Day(day).Valid() {
			return nil, fmt.Errorf("invalid day %q", s)
		}
		p.Day = day
	}
	if s := q.Get("date"); s != "" {
		t, err := parseDateParam(s)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q", s)
		}
		sod := startOfDay(t)
		p.Date = &sod
	}
	if s := q.Get("cursor"); s != "" {
		c, err := DecodeCursor(s)
		if err != nil {
			return nil, fmt.Errorf("invalid cursor")
		}
		p.Cursor = c
	}

	for param, column := range fkParams {
		s := q.Get(param)
		if s == "" || strings.EqualFold(s, DayAll) {
			continue
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q", param, s)
		}
		p.Filters[column] = id
	}

	return p, nil
}

// ApplySearch adds a case-insensitive substring match ORed across the
// given columns. No-op when the search term is empty.
func (p *ListParams) ApplySearch(q *gorm.DB, columns []string) *gorm.DB {
	if p.Search == "" || len(columns) == 0 {
		return q
	}
	pattern := "%" + p.Search + "%"
	clause := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		clause[i] = col + " ILIKE ?"
		args[i] = pattern
	}
	return q.Where(strings.Join(clause, " OR "), args...)
}

// ApplyFilters adds the foreign-key equality filters.
func (p *ListParams) ApplyFilters(q *gorm.DB) *gorm.DB {
	for column, id := range p.Filters {
		q = q.Where(column+" = ?", id)
	}
	return q
}

// ApplyDayDate adds the day/date inclusion predicates. Both are
// deliberately permissive: a day filter never hides date-specific
// rows (day IS NULL passes) and a date filter never hides
// day-recurring rows. A row with day set is recurring no matter what
// its date column holds, so the date filter exempts it even when a
// stale date is present. With both filters set the two conditions are
// ANDed. Must agree with schedule.MatchesDayOrDate.
func (p *ListParams) ApplyDayDate(q *gorm.DB) *gorm.DB {
	if p.Day != "" && p.Day != DayAll {
		q = q.Where("day = ? OR day IS NULL", p.Day)
	}
	if p.Date != nil {
		q = q.Where("date >= ? OR date IS NULL OR day IS NOT NULL", *p.Date)
	}
	return q
}

// ApplySort orders by SortBy when it is on the allow-list, otherwise
// by fallback. Unknown sort fields are ignored, not rejected.
func (p *ListParams) ApplySort(q *gorm.DB, allowed map[string]bool, fallback string) *gorm.DB {
	column := fallback
	if allowed[p.SortBy] {
		column = p.SortBy
	}
	if column == "" {
		return q
	}
	dir := " ASC"
	if p.Order == "desc" {
		dir = " DESC"
	}
	return q.Order(column + dir)
}

// ApplyPagination adds the offset/limit window.
func (p *ListParams) ApplyPagination(q *gorm.DB) *gorm.DB {
	return q.Offset((p.Page - 1) * p.Limit).Limit(p.Limit)
}

// PageMeta is the pagination metadata returned with offset-paginated
// lists.
type PageMeta struct {
	TotalRecords int64 `json:"total_records"`
	CurrentPage  int   `json:"current_page"`
	TotalPages   int   `json:"total_pages"`
	Limit        int   `json:"limit"`
	NextPage     *int  `json:"next_page"`
	PrevPage     *int  `json:"prev_page"`
}

// Meta computes the pagination metadata for a total row count.
func (p *ListParams) Meta(total int64) PageMeta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	meta := PageMeta{
		TotalRecords: total,
		CurrentPage:  p.Page,
		TotalPages:   totalPages,
		Limit:        p.Limit,
	}
	if p.Page < totalPages {
		next := p.Page + 1
		meta.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		meta.PrevPage = &prev
	}
	return meta
}

// Cursor is a keyset position in a list ordered
// `date ASC NULLS FIRST, created_at ASC`. A nil Date means the page
// ended inside the undated (day-recurring) block; CreatedAt then
// locates the row within that block so the next page resumes there
// instead of jumping past the remaining undated rows.
type Cursor struct {
	Date      *time.Time
	CreatedAt time.Time
}

// ApplyCursor adds the keyset predicate matching the cursor ordering.
func (p *ListParams) ApplyCursor(q *gorm.DB) *gorm.DB {
	if p.Cursor == nil {
		return q
	}
	c := p.Cursor
	if c.Date == nil {
		// Rest of the undated block first, then every dated row.
		return q.Where("(date IS NULL AND created_at > ?) OR date IS NOT NULL", c.CreatedAt)
	}
	return q.Where("date > ? OR (date = ? AND created_at > ?)", *c.Date, *c.Date, c.CreatedAt)
}

// EncodeCursor turns the last row's keyset position into an opaque
// cursor. date is nil for rows in the undated block.
func EncodeCursor(date *time.Time, createdAt time.Time) string {
	ds := ""
	if date != nil {
		ds = date.UTC().Format(time.RFC3339Nano)
	}
	raw := ds + "|" + createdAt.UTC().Format(time.RFC3339Nano)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor reverses EncodeCursor.
func DecodeCursor(s string) (*Cursor, error) {
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, err
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed cursor")
	}
	c := &Cursor{}
	if parts[0] != "" {
		t, err := time.Parse(time.RFC3339Nano, parts[0])
		if err != nil {
			return nil, err
		}
		c.Date = &t
	}
	t, err := time.Parse(time.RFC3339Nano, parts[1])
	if err != nil {
		return nil, err
	}
	c.CreatedAt = t
	return c, nil
}

func parseDateParam(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date")
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
