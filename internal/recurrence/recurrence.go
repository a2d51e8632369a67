package recurrence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/sandeepkv93/recurcal/internal/model"
)

type Kind string

const (
	KindNone             Kind = "no-repeat"
	KindDaily            Kind = "daily"
	KindWeekly           Kind = "weekly"
	KindFortnightly      Kind = "two-weekly"
	KindMonthlyByDate    Kind = "monthly-date"
	KindMonthlyByWeekday Kind = "monthly-day"
	KindAnnually         Kind = "annually"
)

var (
	ErrInvalidWeekday = errors.New("recurrence: invalid weekday")
	ErrMissingAnchor  = errors.New("recurrence: anchor date is required")
)

// Kinds lists the repeat patterns in picker order.
func Kinds() []Kind {
	return []Kind{KindNone, KindDaily, KindWeekly, KindFortnightly, KindMonthlyByDate, KindMonthlyByWeekday, KindAnnually}
}

// ParseKind maps a pattern name or alias to its Kind. Unknown names map to
// KindNone and are never an error.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "daily":
		return KindDaily
	case "weekly", "weekdays":
		return KindWeekly
	case "two-weekly", "fortnight", "fortnightly":
		return KindFortnightly
	case "monthly-date":
		return KindMonthlyByDate
	case "monthly-day":
		return KindMonthlyByWeekday
	case "annually", "yearly":
		return KindAnnually
	default:
		return KindNone
	}
}

func (k Kind) IsValid() bool {
	for _, v := range Kinds() {
		if k == v {
			return true
		}
	}
	return false
}

func (k Kind) Label() string {
	switch k {
	case KindDaily:
		return "Daily"
	case KindWeekly:
		return "Weekly"
	case KindFortnightly:
		return "Every two weeks"
	case KindMonthlyByDate:
		return "Monthly on date"
	case KindMonthlyByWeekday:
		return "Monthly on weekday"
	case KindAnnually:
		return "Annually"
	default:
		return "Does not repeat"
	}
}

// Next returns the kind after k in picker order, wrapping around.
func (k Kind) Next(step int) Kind {
	kinds := Kinds()
	idx := 0
	for i, v := range kinds {
		if v == k {
			idx = i
			break
		}
	}
	n := len(kinds)
	return kinds[((idx+step)%n+n)%n]
}

// Pattern is a repeat kind plus, for weekly patterns, the selected weekdays.
type Pattern struct {
	Kind     Kind
	Weekdays []time.Weekday
}

func (p Pattern) IsNone() bool { return !p.Kind.IsValid() || p.Kind == KindNone }

// Describe renders the pattern relative to its anchor, e.g.
// "Monthly on the first Tuesday".
func (p Pattern) Describe(anchor model.Date) string {
	switch p.Kind {
	case KindWeekly:
		names := make([]string, 0, len(p.Weekdays))
		for _, wd := range p.Weekdays {
			names = append(names, wd.String())
		}
		if len(names) == 0 {
			names = append(names, anchor.Weekday().String())
		}
		return "Weekly on " + strings.Join(names, ", ")
	case KindFortnightly:
		return "Every two weeks on " + anchor.Weekday().String()
	case KindMonthlyByDate:
		return fmt.Sprintf("Monthly on day %d", anchor.Day())
	case KindMonthlyByWeekday:
		return fmt.Sprintf("Monthly on the %s %s", ordinalName(weekOrdinal(anchor)), anchor.Weekday())
	case KindAnnually:
		return "Annually on " + anchor.Time().Format("2 January")
	default:
		return p.Kind.Label()
	}
}

// Rule is a configured pattern bound to an anchor and an optional end date.
type Rule struct {
	pattern Pattern
	anchor  model.Date
	until   model.Date
	rule    *rrule.RRule
}

var weekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// Configure builds the rule for p anchored at anchor. A zero until leaves the
// rule unbounded. It returns nil with no error for KindNone and for unknown
// kinds. A weekly pattern without weekdays repeats on the anchor's weekday.
func Configure(p Pattern, anchor, until model.Date) (*Rule, error) {
	if p.IsNone() {
		return nil, nil
	}
	if anchor.IsZero() {
		return nil, ErrMissingAnchor
	}

	effective := Pattern{Kind: p.Kind}
	opts := rrule.ROption{
		Dtstart:  anchor.Time(),
		Interval: 1,
		Wkst:     rrule.MO,
	}
	if !until.IsZero() {
		opts.Until = until.Time()
	}

	switch p.Kind {
	case KindDaily:
		opts.Freq = rrule.DAILY
	case KindWeekly:
		days, err := NormalizeWeekdays(p.Weekdays)
		if err != nil {
			return nil, err
		}
		if len(days) == 0 {
			days = []time.Weekday{anchor.Weekday()}
		}
		effective.Weekdays = days
		opts.Freq = rrule.WEEKLY
		for _, wd := range days {
			opts.Byweekday = append(opts.Byweekday, weekdays[wd])
		}
	case KindFortnightly:
		opts.Freq = rrule.WEEKLY
		opts.Interval = 2
	case KindMonthlyByDate:
		opts.Freq = rrule.MONTHLY
	case KindMonthlyByWeekday:
		opts.Freq = rrule.MONTHLY
		opts.Byweekday = []rrule.Weekday{weekdays[anchor.Weekday()].Nth(weekOrdinal(anchor))}
	case KindAnnually:
		opts.Freq = rrule.YEARLY
	}

	r, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("recurrence: configure %s: %w", p.Kind, err)
	}
	return &Rule{pattern: effective, anchor: anchor, until: until, rule: r}, nil
}

// NormalizeWeekdays sorts and de-duplicates days, rejecting values outside
// Sunday..Saturday.
func NormalizeWeekdays(days []time.Weekday) ([]time.Weekday, error) {
	seen := make(map[time.Weekday]bool, len(days))
	out := make([]time.Weekday, 0, len(days))
	for _, wd := range days {
		if wd < time.Sunday || wd > time.Saturday {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, wd)
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out = append(out, wd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Pattern returns the effective pattern, with auto-selected weekdays filled in.
func (r *Rule) Pattern() Pattern {
	out := Pattern{Kind: r.pattern.Kind}
	if len(r.pattern.Weekdays) > 0 {
		out.Weekdays = append([]time.Weekday(nil), r.pattern.Weekdays...)
	}
	return out
}

func (r *Rule) Anchor() model.Date { return r.anchor }
func (r *Rule) Until() model.Date  { return r.until }

// Between enumerates the matching dates in [from, to], clamped to the
// rule's anchor and end date.
func (r *Rule) Between(from, to model.Date) []model.Date {
	if r == nil {
		return nil
	}
	from = model.MaxDate(from, r.anchor)
	if !r.until.IsZero() {
		to = model.MinDate(to, r.until)
	}
	if to.Before(from) {
		return nil
	}
	times := r.rule.Between(from.Time(), to.Time(), true)
	out := make([]model.Date, 0, len(times))
	for _, t := range times {
		out = append(out, model.DateOf(t))
	}
	return out
}

func (r *Rule) Matches(d model.Date) bool {
	return len(r.Between(d, d)) > 0
}

// RRuleString is the RFC 5545 RRULE value without DTSTART. UNTIL is a DATE
// to match the all-day DTSTART.
func (r *Rule) RRuleString() string {
	opts := r.rule.OrigOptions
	opts.Until = time.Time{}
	s := opts.RRuleString()
	if !r.until.IsZero() {
		s += ";UNTIL=" + r.until.Time().Format("20060102")
	}
	return s
}

// weekOrdinal is the anchor's week-of-month ordinal; a fifth occurrence
// is treated as the last one so short months still repeat.
func weekOrdinal(d model.Date) int {
	n := (d.Day()-1)/7 + 1
	if n == 5 {
		return -1
	}
	return n
}

func ordinalName(n int) string {
	switch n {
	case 1:
		return "first"
	case 2:
		return "second"
	case 3:
		return "third"
	case 4:
		return "fourth"
	default:
		return "last"
	}
}
