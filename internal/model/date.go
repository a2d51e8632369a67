package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout     = "2006-01-02"
	DateLayoutLong = "2 January, 2006"
)

var ErrInvalidDate = errors.New("model: invalid date")

// Date is a calendar day without a time component. Two Dates are equal
// when they name the same calendar day, so Date is safe to use with ==
// and as a map key.
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate normalizes overflowing values the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func ParseDate(raw string) (Date, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Date{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}
	t, err := time.Parse(DateLayout, v)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return DateOf(t), nil
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) Year() int             { return d.year }
func (d Date) Month() time.Month     { return d.month }
func (d Date) Day() int              { return d.day }
func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateLayout)
}

func (d Date) FormatLong() string {
	return d.Time().Format(DateLayoutLong)
}

func (d Date) AddDays(n int) Date   { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.Time().AddDate(0, n, 0)) }
func (d Date) AddYears(n int) Date  { return DateOf(d.Time().AddDate(n, 0, 0)) }

func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(int(d.month), int(o.month))
	default:
		return cmpInt(d.day, o.day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// Within reports whether d lies in the inclusive range [from, to].
func (d Date) Within(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

func MinDate(a, b Date) Date {
	if a.Before(b) {
		return a
	}
	return b
}

func MaxDate(a, b Date) Date {
	if a.After(b) {
		return a
	}
	return b
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
