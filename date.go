package pigro

import (
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day, without time or location.
type Date struct {
	y int
	m time.Month
	d int
}

// NewDate returns the day year-month-day. Out of range values are normalized
// like time.Date does: NewDate(2024, 3, 0) is 2024-02-29.
func NewDate(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// ParseDate reads an ISO date. Single digit months and days are accepted.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-1-2", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return NewDate(t.Date()), nil
}

func (d Date) Year() int         { return d.y }
func (d Date) Month() time.Month { return d.m }

func (d Date) String() string { return d.Format("2006-01-02") }

// Format formats d with a time layout.
func (d Date) Format(layout string) string { return d.t().Format(layout) }

// ISOWeek returns the ISO 8601 year and week of d.
func (d Date) ISOWeek() (year, week int) { return d.t().ISOWeek() }

// Compare returns -1, 0 or +1 when d is before, on or after x.
func (d Date) Compare(x Date) int { return d.t().Compare(x.t()) }

// t is d at midnight UTC.
func (d Date) t() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }
