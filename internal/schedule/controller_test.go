package schedule

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/reconcile"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
)

type recorder struct {
	frames []Frame
}

func (r *recorder) Paint(f Frame) { r.frames = append(r.frames, f) }

func (r *recorder) last() Frame { return r.frames[len(r.frames)-1] }

func date(t *testing.T, raw string) model.Date {
	t.Helper()
	d, err := model.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func formatted(dates []model.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}

func newController(t *testing.T, cfg Config, opts ...Option) (*Controller, *recorder) {
	t.Helper()
	rec := &recorder{}
	c, err := Initialize(rec, cfg, opts...)
	require.NoError(t, err)
	return c, rec
}

func repeatDays(f Frame) []string {
	out := []string{}
	for _, day := range f.Days {
		if day.State == model.StateRepeatOn {
			out = append(out, day.Date.String())
		}
	}
	return out
}

func TestDailyPatternCoversWholeRange(t *testing.T) {
	c, _ := newController(t, Config{
		StartDate: "2018-01-02",
		EndDate:   "2018-02-27",
		Events:    []string{"2018-01-10"},
	})
	c.SetPattern("daily")

	for d := date(t, "2018-01-03"); !d.After(date(t, "2018-02-27")); d = d.AddDays(1) {
		require.Equal(t, model.StateRepeatOn, c.Resolve(d), d.String())
	}
	assert.Equal(t, model.StateFixed, c.Resolve(date(t, "2018-01-02")))
	assert.Equal(t, model.StateInactive, c.Resolve(date(t, "2018-01-01")))
	assert.Equal(t, model.StateInactive, c.Resolve(date(t, "2018-02-28")))

	tr := c.OnDateActivated(date(t, "2018-01-04"))
	assert.Equal(t, model.StateToDelete, tr.To)
	assert.Equal(t, []string{"2018-01-04"}, formatted(c.Exceptions().ToDelete))
	assert.Equal(t, model.StateToDelete, c.Resolve(date(t, "2018-01-04")))
}

func TestWeeklyAutoSelectsStartWeekday(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"})
	c.SetPattern("weekly")

	assert.Equal(t, []time.Weekday{time.Tuesday}, c.CurrentPattern().Weekdays)
	rule, ok := c.Pattern().Get()
	require.True(t, ok)
	jan := model.MonthOf(c.Start())
	assert.Equal(t,
		[]string{"2018-01-02", "2018-01-09", "2018-01-16", "2018-01-23", "2018-01-30"},
		formatted(rule.Between(jan.First(), jan.Last())))

	// The start date itself stays fixed rather than painted as a repeat.
	assert.Equal(t, []string{"2018-01-09", "2018-01-16", "2018-01-23", "2018-01-30"}, repeatDays(rec.last()))
	assert.Equal(t, model.StateFixed, rec.last().State(date(t, "2018-01-02")))
	assert.True(t, rec.last().WeekdayPickerVisible)
	assert.Equal(t, "Weekly on Tuesday", rec.last().PatternLabel)
}

func TestToggleTwiceClearsAddition(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-07-01"})
	assert.Equal(t, "2033-07-01", c.End().String())

	c.OnDateActivated(date(t, "2018-07-04"))
	assert.Equal(t, []string{"2018-07-04"}, formatted(c.Exceptions().ToAdd))
	assert.Equal(t, "1 day will be added", rec.last().Summary.AddedText())
	assert.True(t, rec.last().Summary.ShowReset())
	assert.Equal(t, "Selected. Event will repeat on 4 July, 2018", rec.last().Announcement)

	c.OnDateActivated(date(t, "2018-07-04"))
	assert.Empty(t, c.Exceptions().ToAdd)
	assert.Empty(t, rec.last().Summary.AddedText())
	assert.False(t, rec.last().Summary.ShowReset())
}

func TestDeletionPersistsAcrossPatternSwitch(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"})
	c.SetPattern("weekly")
	c.OnDateActivated(date(t, "2018-01-09"))
	c.SetPattern("fortnight")

	assert.Equal(t, []string{"2018-01-09"}, formatted(c.Exceptions().ToDelete))
	assert.Equal(t, model.StateToDelete, c.Resolve(date(t, "2018-01-09")))
	assert.Equal(t, model.StateToDelete, rec.last().State(date(t, "2018-01-09")))
	assert.Equal(t, []string{"2018-01-16", "2018-01-30"}, repeatDays(rec.last()))
}

func TestInitializeRejectsInvertedRange(t *testing.T) {
	_, err := Initialize(&recorder{}, Config{StartDate: "1981-07-02", EndDate: "1981-07-01"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "End date can not be before the start date", cfgErr.Error())
}

func TestInitializeRequiresPainter(t *testing.T) {
	_, err := Initialize(nil, Config{StartDate: "2018-01-02"})
	require.ErrorIs(t, err, ErrConfiguration)
	assert.Equal(t, "a painter must be passed to the schedule controller", err.Error())
}

func TestInitializeRejectsMalformedDates(t *testing.T) {
	for _, cfg := range []Config{
		{StartDate: "02/01/2018"},
		{StartDate: "2018-01-02", EndDate: "soon"},
		{StartDate: "2018-01-02", DatesToAdd: []string{"2018-01-40"}},
		{StartDate: "2018-01-02", WeekStart: "friday"},
	} {
		_, err := Initialize(&recorder{}, cfg)
		assert.ErrorIs(t, err, ErrConfiguration, "%+v", cfg)
	}
}

func TestInitializeBoundPriority(t *testing.T) {
	today := time.Date(2020, 3, 15, 9, 0, 0, 0, time.UTC)
	clock := WithDateContext(DateContext{Now: func() time.Time { return today }, Location: time.UTC})

	c, _ := newController(t, Config{}, clock)
	assert.Equal(t, "2020-03-15", c.Start().String())
	assert.Equal(t, "2035-03-15", c.End().String())

	c, _ = newController(t, Config{StartDate: "2018-01-02"}, clock)
	assert.Equal(t, "2018-01-02", c.Start().String())

	c, _ = newController(t, Config{
		Fields:    Fields{Start: "2018-05-01", End: "2018-06-30"},
		StartDate: "2018-01-02",
		EndDate:   "2019-01-01",
	}, clock)
	assert.Equal(t, "2018-05-01", c.Start().String())
	assert.Equal(t, "2018-06-30", c.End().String())
}

func TestInitializeSeedsExceptionsWithinRange(t *testing.T) {
	c, rec := newController(t, Config{
		StartDate:  "2018-01-02",
		EndDate:    "2018-02-27",
		Events:     []string{"2017-12-25", "2018-01-12"},
		DatesToAdd: []string{"2018-01-02", "2018-01-05", "2018-01-20", "2018-03-01"},
		DatesToDel: []string{"2018-01-20", "2017-12-01", "2018-01-12"},
		Pattern:    "weekly",
		Weekdays:   []time.Weekday{time.Friday},
	})

	ex := c.Exceptions()
	assert.Equal(t, []string{"2018-01-05"}, formatted(ex.ToAdd))
	assert.Equal(t, []string{"2018-01-20", "2018-01-12"}, formatted(ex.ToDelete))
	assert.Equal(t, []string{"2018-01-12"}, formatted(c.Events()))

	// 2018-01-05 is a Friday, so the manual addition resolves as a repeat.
	assert.Equal(t, model.StateRepeatOn, c.Resolve(date(t, "2018-01-05")))
	assert.Equal(t, model.StateToDelete, c.Resolve(date(t, "2018-01-12")))
	assert.Len(t, rec.frames, 1)
}

func TestFramesPerOperation(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"})
	require.Len(t, rec.frames, 1)
	assert.Equal(t, reconcile.PaintRepeatOn, rec.frames[0].Method)

	c.SetPattern("daily")
	require.Len(t, rec.frames, 3)
	assert.Equal(t, reconcile.PaintClear, rec.frames[1].Method)
	assert.Equal(t, reconcile.PaintRepeatOn, rec.frames[2].Method)

	// Fixed and inactive days are ignored without a repaint.
	c.OnDateActivated(date(t, "2018-01-02"))
	c.OnDateActivated(date(t, "2018-03-02"))
	assert.Len(t, rec.frames, 3)

	c.OnDateActivated(date(t, "2018-01-03"))
	assert.Len(t, rec.frames, 4)
}

func TestUnknownPatternMeansNoRepeat(t *testing.T) {
	c, _ := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27", Pattern: "daily"})
	require.True(t, c.Pattern().IsPresent())

	c.SetPattern("every-other-blue-moon")
	assert.False(t, c.Pattern().IsPresent())
	assert.Equal(t, recurrence.KindNone, c.CurrentPattern().Kind)
	assert.Equal(t, model.StateNeutral, c.Resolve(date(t, "2018-01-03")))
}

func TestToggleWeekday(t *testing.T) {
	c, _ := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27", Pattern: "daily"})

	c.ToggleWeekday(time.Monday)
	assert.Equal(t, recurrence.Pattern{Kind: recurrence.KindWeekly, Weekdays: []time.Weekday{time.Monday}}, c.CurrentPattern())

	c.ToggleWeekday(time.Thursday)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, c.CurrentPattern().Weekdays)
	assert.Equal(t, model.StateRepeatOn, c.Resolve(date(t, "2018-01-04")))

	c.ToggleWeekday(time.Monday)
	c.ToggleWeekday(time.Thursday)
	assert.Equal(t, []time.Weekday{time.Tuesday}, c.CurrentPattern().Weekdays)
}

func TestChangeStartDateLegacyBoundCheck(t *testing.T) {
	c, _ := newController(t, Config{
		StartDate:  "2018-01-02",
		EndDate:    "2018-12-31",
		DatesToAdd: []string{"2018-01-05", "2018-02-03", "2018-02-20"},
	})

	require.NoError(t, c.ChangeStartDate(date(t, "2018-02-10")))
	// Default bound check: only same-month entries with a lower
	// day of month are dropped, so 2018-01-05 survives although it now
	// lies before the start date.
	assert.Equal(t, []string{"2018-01-05", "2018-02-20"}, formatted(c.Exceptions().ToAdd))
	assert.Equal(t, model.StateInactive, c.Resolve(date(t, "2018-01-05")))
	assert.Equal(t, model.MonthOf(date(t, "2018-02-10")), c.Visible())
}

func TestChangeStartDateStrictBounds(t *testing.T) {
	c, _ := newController(t, Config{
		StartDate:    "2018-01-02",
		EndDate:      "2018-12-31",
		DatesToAdd:   []string{"2018-01-05", "2018-02-03", "2018-02-20"},
		DatesToDel:   []string{"2018-02-10"},
		StrictBounds: true,
	})

	require.NoError(t, c.ChangeStartDate(date(t, "2018-02-10")))
	assert.Equal(t, []string{"2018-02-20"}, formatted(c.Exceptions().ToAdd))
	assert.Empty(t, c.Exceptions().ToDelete)
	assert.Equal(t, model.StateFixed, c.Resolve(date(t, "2018-02-10")))
}

func TestChangeEndDate(t *testing.T) {
	c, rec := newController(t, Config{
		StartDate:  "2018-01-02",
		EndDate:    "2018-12-31",
		DatesToAdd: []string{"2018-02-20", "2018-03-15"},
		Pattern:    "daily",
	})
	c.GotoMonth(model.Month{Year: 2018, Month: time.March})

	require.NoError(t, c.ChangeEndDate(date(t, "2018-02-10")))
	assert.Equal(t, []string{"2018-03-15"}, formatted(c.Exceptions().ToAdd))
	assert.Equal(t, "2018-02", c.Visible().String())
	assert.Equal(t, model.StateInactive, rec.last().State(date(t, "2018-02-11")))
	assert.Equal(t, model.StateRepeatOn, rec.last().State(date(t, "2018-02-10")))
	assert.False(t, rec.last().CanNext)
}

func TestChangeEndDateKeepsEntryOnNewEnd(t *testing.T) {
	for _, strict := range []bool{false, true} {
		c, _ := newController(t, Config{
			StartDate:    "2018-01-02",
			EndDate:      "2018-02-27",
			Pattern:      "weekly",
			DatesToAdd:   []string{"2018-02-15"},
			DatesToDel:   []string{"2018-02-20"},
			StrictBounds: strict,
		})

		require.NoError(t, c.ChangeEndDate(date(t, "2018-02-20")))
		assert.Equal(t, []string{"2018-02-15"}, formatted(c.Exceptions().ToAdd), "strict=%v", strict)
		assert.Equal(t, []string{"2018-02-20"}, formatted(c.Exceptions().ToDelete), "strict=%v", strict)
		assert.Equal(t, model.StateToDelete, c.Resolve(date(t, "2018-02-20")), "strict=%v", strict)

		require.NoError(t, c.ChangeEndDate(date(t, "2018-02-15")))
		assert.Equal(t, []string{"2018-02-15"}, formatted(c.Exceptions().ToAdd), "strict=%v", strict)
		assert.Empty(t, c.Exceptions().ToDelete, "strict=%v", strict)
		assert.Equal(t, model.StateToAdd, c.Resolve(date(t, "2018-02-15")), "strict=%v", strict)
	}
}

func TestChangeStartDateDropsEntryOnNewStart(t *testing.T) {
	for _, strict := range []bool{false, true} {
		c, _ := newController(t, Config{
			StartDate:    "2018-01-02",
			EndDate:      "2018-02-27",
			DatesToAdd:   []string{"2018-01-09", "2018-01-10"},
			StrictBounds: strict,
		})

		require.NoError(t, c.ChangeStartDate(date(t, "2018-01-09")))
		assert.Equal(t, []string{"2018-01-10"}, formatted(c.Exceptions().ToAdd), "strict=%v", strict)
		assert.Equal(t, model.StateFixed, c.Resolve(date(t, "2018-01-09")), "strict=%v", strict)
		assert.Equal(t, model.StateToAdd, c.Resolve(date(t, "2018-01-10")), "strict=%v", strict)
	}
}

func TestChangeBoundsRejectInvertedRange(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"})
	frames := len(rec.frames)

	assert.ErrorIs(t, c.ChangeStartDate(date(t, "2018-03-01")), ErrInvalidRange)
	assert.ErrorIs(t, c.ChangeEndDate(date(t, "2017-12-31")), ErrInvalidRange)
	assert.ErrorIs(t, c.ChangeEndDate(model.Date{}), model.ErrInvalidDate)
	assert.Equal(t, "2018-01-02", c.Start().String())
	assert.Equal(t, "2018-02-27", c.End().String())
	assert.Len(t, rec.frames, frames)
}

func TestAutoWeekdayFollowsStartDate(t *testing.T) {
	c, _ := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27", Pattern: "weekly"})
	require.Equal(t, []time.Weekday{time.Tuesday}, c.CurrentPattern().Weekdays)

	require.NoError(t, c.ChangeStartDate(date(t, "2018-01-03")))
	assert.Equal(t, []time.Weekday{time.Wednesday}, c.CurrentPattern().Weekdays)
	assert.Equal(t, model.StateRepeatOn, c.Resolve(date(t, "2018-01-10")))

	c.ToggleWeekday(time.Friday)
	require.NoError(t, c.ChangeStartDate(date(t, "2018-01-04")))
	assert.Equal(t, []time.Weekday{time.Wednesday, time.Friday}, c.CurrentPattern().Weekdays)
}

func TestResetRestoresBaseline(t *testing.T) {
	c, rec := newController(t, Config{
		StartDate:  "2018-01-02",
		EndDate:    "2018-06-30",
		DatesToAdd: []string{"2018-01-04"},
		DatesToDel: []string{"2018-01-09"},
		Pattern:    "weekly",
	})
	before := c.Exceptions()
	pattern := c.CurrentPattern()

	c.OnDateActivated(date(t, "2018-01-04"))
	c.OnDateActivated(date(t, "2018-01-16"))
	c.SetPattern("monthly-day")
	require.NoError(t, c.ChangeStartDate(date(t, "2018-02-07")))
	require.NoError(t, c.ChangeEndDate(date(t, "2018-03-31")))
	c.GotoMonth(model.Month{Year: 2018, Month: time.March})

	c.Reset()
	assert.Equal(t, before, c.Exceptions())
	assert.Equal(t, pattern, c.CurrentPattern())
	assert.Equal(t, "2018-01-02", c.Start().String())
	assert.Equal(t, "2018-06-30", c.End().String())
	assert.Equal(t, "2018-01", c.Visible().String())
	assert.Equal(t, "2018-01", rec.last().Month.String())

	// The snapshot is not shared with the live sets.
	c.OnDateActivated(date(t, "2018-01-05"))
	c.Reset()
	assert.Equal(t, before, c.Exceptions())
}

func TestMonthNavigationIsClamped(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"})
	assert.False(t, rec.last().CanPrev)
	assert.True(t, rec.last().CanNext)

	assert.False(t, c.PrevMonth())
	assert.True(t, c.NextMonth())
	assert.False(t, c.NextMonth())
	assert.Equal(t, "2018-02", rec.last().Month.String())
	assert.True(t, rec.last().CanPrev)

	c.GotoMonth(model.Month{Year: 2010, Month: time.May})
	assert.Equal(t, "2018-01", c.Visible().String())
}

func TestWeekStartFromLocale(t *testing.T) {
	c, rec := newController(t, Config{StartDate: "2018-01-02", Locale: "en_US"})
	assert.Equal(t, time.Sunday, c.WeekStart())
	assert.Equal(t, time.Sunday, rec.last().WeekStart)

	c, _ = newController(t, Config{StartDate: "2018-01-02", Locale: "en_US", WeekStart: "monday"})
	assert.Equal(t, time.Monday, c.WeekStart())

	c, _ = newController(t, Config{StartDate: "2018-01-02", Locale: "de-DE"})
	assert.Equal(t, time.Monday, c.WeekStart())
}

func TestLoggerReceivesLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{Name: "test", Level: hclog.Debug, Output: &buf})
	c, _ := newController(t, Config{StartDate: "2018-01-02", EndDate: "2018-02-27"}, WithLogger(logger))
	c.SetPattern("daily")
	c.OnDateActivated(date(t, "2018-01-05"))

	out := buf.String()
	assert.Contains(t, out, "schedule initialized")
	assert.Contains(t, out, "pattern changed")
	assert.Contains(t, out, "date toggled")
	assert.Contains(t, out, c.ID())
}

func TestPatternSwitchPreservesExceptions(t *testing.T) {
	kinds := []string{"daily", "weekly", "fortnight", "monthly-date", "monthly-day", "annually", "no-repeat"}
	rng := rand.New(rand.NewSource(11))
	c, _ := newController(t, Config{
		StartDate: "2018-01-02",
		EndDate:   "2018-04-30",
		Events:    []string{"2018-02-14"},
	})

	for round := 0; round < 30; round++ {
		p := kinds[rng.Intn(len(kinds))]
		q := kinds[rng.Intn(len(kinds))]
		c.SetPattern(p)
		d := c.Start().AddDays(1 + rng.Intn(110))
		c.OnDateActivated(d)
		want := c.Resolve(d)
		ex := c.Exceptions()

		c.SetPattern(q)
		assert.Equal(t, ex, c.Exceptions(), "round %d: %s -> %s", round, p, q)

		c.SetPattern(p)
		assert.Equal(t, want, c.Resolve(d), "round %d: %s -> %s -> %s on %s", round, p, q, p, d)
		assert.Equal(t, ex, c.Exceptions())

		for _, added := range ex.ToAdd {
			require.NotContains(t, formatted(ex.ToDelete), added.String())
		}
	}
}
