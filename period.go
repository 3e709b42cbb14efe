package pigro

import (
	"fmt"
	"strings"
	"time"
)

// Period is a sampling frequency of a series.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

// Periods lists every period, shortest first.
var Periods = []Period{Daily, Weekly, Monthly, Quarterly, Yearly}

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return "periodic"
	}
}

// Start returns the first day of the period containing d. Weeks start on Monday.
func (p Period) Start(d Date) Date {
	switch p {
	case Weekly:
		// time.Sunday is 0.
		back := (int(d.t().Weekday()) + 6) % 7
		return NewDate(d.y, d.m, d.d-back)
	case Monthly:
		return NewDate(d.y, d.m, 1)
	case Quarterly:
		return NewDate(d.y, (d.m-1)/3*3+1, 1)
	case Yearly:
		return NewDate(d.y, time.January, 1)
	default:
		return d
	}
}

// End returns the last day of the period containing d. Weeks end on Sunday.
func (p Period) End(d Date) Date {
	s := p.Start(d)
	switch p {
	case Weekly:
		return NewDate(s.y, s.m, s.d+6)
	case Monthly:
		return NewDate(s.y, s.m+1, 0)
	case Quarterly:
		return NewDate(s.y, s.m+3, 0)
	case Yearly:
		return NewDate(s.y+1, time.January, 0)
	default:
		return d
	}
}

// Label returns the chart label of the period containing d.
func (p Period) Label(d Date) string {
	switch p {
	case Daily:
		return d.String()
	case Weekly:
		year, week := d.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return d.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", d.Year(), (d.Month()-1)/3+1)
	case Yearly:
		return d.Format("2006")
	default:
		return d.String()
	}
}

// ParsePeriod parses a frequency name, in its adjective or noun form.
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// ParseFrequency is like ParsePeriod but falls back to Monthly for unknown values.
func ParseFrequency(freq string) Period {
	p, err := ParsePeriod(freq)
	if err != nil {
		return Monthly
	}
	return p
}
