package ledger

import (
	"strings"
	"time"

	"storeops/internal/core/apperror"
	"storeops/internal/core/id"
	"storeops/internal/domain"
)

// DateLayout is the backend date format.
const DateLayout = "2006-01-02"

// MaxWindowDays bounds the span of one window.
const MaxWindowDays = 366

// DefaultWindowDays is the span of the window a new view starts with.
const DefaultWindowDays = 7

// Window selects the dates and page the three ledger models are fetched for.
type Window struct {
	From time.Time
	To   time.Time
	domain.PageRequest
}

// DefaultWindow returns the last DefaultWindowDays days ending on now's date, first page.
func DefaultWindow(now time.Time) Window {
	to := truncateDay(now)
	return Window{
		From:        to.AddDate(0, 0, -(DefaultWindowDays - 1)),
		To:          to,
		PageRequest: domain.PageRequest{}.Normalize(),
	}
}

// ParseWindow builds a window from backend-format date strings.
func ParseWindow(from, to string, page domain.PageRequest) (Window, error) {
	f, err := parseDate("fromDate", from)
	if err != nil {
		return Window{}, err
	}
	t, err := parseDate("toDate", to)
	if err != nil {
		return Window{}, err
	}
	w := Window{From: f, To: t, PageRequest: page.Normalize()}
	return w, w.Validate()
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, apperror.NewValidation(field+" is required").WithDetail("field", field)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, apperror.NewValidation(field+" must be YYYY-MM-DD").
			WithDetail("field", field).
			WithDetail("value", s)
	}
	return t, nil
}

// Validate checks the date range.
func (w Window) Validate() error {
	if w.From.IsZero() || w.To.IsZero() {
		return apperror.NewValidation("window dates are required")
	}
	if w.To.Before(w.From) {
		return apperror.NewValidation("toDate must not be before fromDate").
			WithDetail("fromDate", w.FromDate()).
			WithDetail("toDate", w.ToDate())
	}
	if days := int(w.To.Sub(w.From).Hours()/24) + 1; days > MaxWindowDays {
		return apperror.NewValidation("window is too long").
			WithDetail("days", days).
			WithDetail("maxDays", MaxWindowDays)
	}
	return nil
}

// FromDate formats From for the backend.
func (w Window) FromDate() string { return w.From.Format(DateLayout) }

// ToDate formats To for the backend.
func (w Window) ToDate() string { return w.To.Format(DateLayout) }

// SameDates reports whether w and o cover the same range.
func (w Window) SameDates(o Window) bool {
	return w.From.Equal(o.From) && w.To.Equal(o.To)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RowKey builds the drill-down key of a summary row.
func RowKey(productID id.Ref, date string) string {
	return productID.String() + "|" + date
}

// ParseRowKey splits a row key into product and date.
func ParseRowKey(key string) (id.Ref, string, error) {
	p, d, ok := strings.Cut(key, "|")
	if !ok || strings.TrimSpace(p) == "" {
		return "", "", apperror.NewValidation("invalid row key").WithDetail("key", key)
	}
	if _, err := time.Parse(DateLayout, d); err != nil {
		return "", "", apperror.NewValidation("invalid row key date").WithDetail("key", key)
	}
	return id.Ref(p), d, nil
}
