package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, raw string) Date {
	t.Helper()
	d, err := ParseDate(raw)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2018-01-02")
	assert.Equal(t, 2018, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 2, d.Day())
	assert.Equal(t, time.Tuesday, d.Weekday())
	assert.Equal(t, "2018-01-02", d.String())
	assert.Equal(t, "2 January, 2018", d.FormatLong())

	for _, raw := range []string{"", "  ", "2018-13-01", "02/01/2018", "2018-02-30"} {
		_, err := ParseDate(raw)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", raw)
	}
}

func TestDateEqualityIsByCalendarDay(t *testing.T) {
	morning := time.Date(2018, 7, 4, 6, 30, 0, 0, time.UTC)
	evening := time.Date(2018, 7, 4, 23, 59, 59, 999, time.UTC)
	assert.Equal(t, DateOf(morning), DateOf(evening))
	assert.True(t, DateOf(morning) == mustDate(t, "2018-07-04"))

	seoul, err := time.LoadLocation("Asia/Seoul")
	if err == nil {
		local := time.Date(2018, 7, 4, 1, 0, 0, 0, seoul)
		assert.Equal(t, mustDate(t, "2018-07-04"), DateOf(local))
	}
}

func TestDateArithmetic(t *testing.T) {
	d := mustDate(t, "2018-01-31")
	assert.Equal(t, "2018-02-01", d.AddDays(1).String())
	assert.Equal(t, "2018-03-03", d.AddMonths(1).String())
	assert.Equal(t, "2033-01-31", d.AddYears(15).String())
	assert.Equal(t, "2017-12-31", NewDate(2018, time.January, 0).String())

	a := mustDate(t, "2018-01-02")
	b := mustDate(t, "2018-02-01")
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.Within(a, b))
	assert.False(t, b.AddDays(1).Within(a, b))
	assert.Equal(t, a, MinDate(a, b))
	assert.Equal(t, b, MaxDate(a, b))
	assert.True(t, Date{}.IsZero())
}

func TestMonth(t *testing.T) {
	m := MonthOf(mustDate(t, "2018-02-14"))
	assert.Equal(t, "2018-02", m.String())
	assert.Equal(t, "February 2018", m.Title())
	assert.Equal(t, "2018-02-01", m.First().String())
	assert.Equal(t, "2018-02-28", m.Last().String())
	assert.Len(t, m.Days(), 28)
	assert.Equal(t, "2018-03", m.Next().String())
	assert.Equal(t, "2017-12", m.Add(-2).String())
	assert.True(t, m.Contains(mustDate(t, "2018-02-28")))
	assert.False(t, m.Contains(mustDate(t, "2019-02-28")))
	assert.True(t, m.Prev().Before(m))

	parsed, err := ParseMonth("2018-02")
	require.NoError(t, err)
	assert.Equal(t, m, parsed)
	_, err = ParseMonth("2018-2-1")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestResolvedStateInteractivity(t *testing.T) {
	assert.False(t, StateInactive.Interactive())
	assert.False(t, StateFixed.Interactive())
	assert.False(t, ResolvedState("bogus").Interactive())
	for _, s := range []ResolvedState{StateNeutral, StateRepeatOn, StateToAdd, StateToDelete, StateEvent} {
		assert.True(t, s.Interactive(), "state %s", s)
	}
	assert.True(t, StateToAdd.Occurs())
	assert.False(t, StateToDelete.Occurs())
}
