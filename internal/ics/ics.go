package ics

import (
	"errors"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/samber/mo"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
	"github.com/sandeepkv93/recurcal/internal/schedule"
)

const (
	ProductID = "-//recurcal//schedule export//EN"
	dateValue = "20060102"
	uidDomain = "recurcal"
)

var ErrNoSchedule = errors.New("ics: nothing to export")

// Source is the read-only view of a schedule needed for export.
// *schedule.Controller satisfies it.
type Source interface {
	ID() string
	Start() model.Date
	End() model.Date
	Pattern() mo.Option[recurrence.Rule]
	Exceptions() schedule.Exceptions
	Events() []model.Date
}

type Options struct {
	Summary string
	// Now stamps DTSTAMP; zero means time.Now.
	Now time.Time
}

// Render writes the schedule as a single all-day VEVENT. The rule becomes
// RRULE, dates to add and pre-existing events become RDATE, and dates to
// delete become EXDATE.
func Render(src Source, opts Options) (string, error) {
	if src == nil || src.Start().IsZero() {
		return "", ErrNoSchedule
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	summary := opts.Summary
	if summary == "" {
		summary = "Recurring event"
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)

	ev := cal.AddEvent(src.ID() + "@" + uidDomain)
	ev.SetDtStampTime(now.UTC())
	ev.SetSummary(summary)
	ev.SetAllDayStartAt(src.Start().Time())

	asDate := ical.WithValue(string(ical.ValueDataTypeDate))
	if rule, ok := src.Pattern().Get(); ok {
		ev.AddRrule(rule.RRuleString())
	}

	exc := src.Exceptions()
	rdates := model.NewDateSet(exc.ToAdd...)
	for _, d := range src.Events() {
		if d == src.Start() {
			continue
		}
		rdates.Add(d)
	}
	for _, d := range rdates.Dates() {
		ev.AddRdate(d.Time().Format(dateValue), asDate)
	}
	for _, d := range exc.ToDelete {
		ev.AddExdate(d.Time().Format(dateValue), asDate)
	}

	return cal.Serialize(), nil
}
