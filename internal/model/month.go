package model

import (
	"fmt"
	"strings"
	"time"
)

const MonthLayout = "2006-01"

// Month identifies one page of the calendar grid.
type Month struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

func ParseMonth(raw string) (Month, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(raw))
	if err != nil {
		return Month{}, fmt.Errorf("%w: month %q", ErrInvalidDate, raw)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }
func (m Month) Last() Date  { return NewDate(m.Year, m.Month+1, 0) }

func (m Month) Add(n int) Month {
	return MonthOf(m.First().AddMonths(n))
}

func (m Month) Next() Month { return m.Add(1) }
func (m Month) Prev() Month { return m.Add(-1) }

func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// Days lists every day of the month in order.
func (m Month) Days() []Date {
	last := m.Last().Day()
	out := make([]Date, 0, last)
	for day := 1; day <= last; day++ {
		out = append(out, NewDate(m.Year, m.Month, day))
	}
	return out
}

func (m Month) Compare(o Month) int {
	return m.First().Compare(o.First())
}

func (m Month) Before(o Month) bool { return m.Compare(o) < 0 }
func (m Month) After(o Month) bool  { return m.Compare(o) > 0 }

func (m Month) String() string {
	return m.First().Time().Format(MonthLayout)
}

// Title is the grid caption, e.g. "January 2018".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
