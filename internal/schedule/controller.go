package schedule

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/samber/mo"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/reconcile"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
)

// Exceptions are the manual overrides of the pattern, in insertion order.
type Exceptions struct {
	ToAdd    []model.Date
	ToDelete []model.Date
}

type baseline struct {
	start       model.Date
	end         model.Date
	pattern     recurrence.Pattern
	autoWeekday bool
	toAdd       *model.DateSet
	toDelete    *model.DateSet
}

// Controller owns the mutable schedule of one widget and repaints through
// its Painter after every change. It is not safe for concurrent use.
type Controller struct {
	id        uuid.UUID
	painter   Painter
	logger    hclog.Logger
	dates     DateContext
	weekStart time.Weekday
	strict    bool

	engine      reconcile.Engine
	pattern     recurrence.Pattern
	autoWeekday bool
	visible     model.Month
	baseline    baseline

	announcement string
}

// Initialize resolves the schedule from cfg, snapshots it for Reset and
// paints the start month. Start comes from the bound field, then the
// config, then today; end from the bound field, then the config, then
// start plus fifteen years.
func Initialize(painter Painter, cfg Config, opts ...Option) (*Controller, error) {
	if painter == nil {
		return nil, &ConfigurationError{Reason: reasonMissingPainter}
	}
	o := options{logger: hclog.NewNullLogger(), dates: DefaultDateContext()}
	for _, opt := range opts {
		opt(&o)
	}

	start, ok, err := resolveBound("start", cfg.Fields.Start, cfg.StartDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		start = o.dates.Today()
	}
	end, ok, err := resolveBound("end", cfg.Fields.End, cfg.EndDate)
	if err != nil {
		return nil, err
	}
	if !ok {
		end = start.AddYears(defaultSpanYears)
	}
	if end.Before(start) {
		return nil, &ConfigurationError{Reason: reasonInvertedRange, Err: ErrInvalidRange}
	}

	weekStart, err := WeekStartFor(cfg.Locale, cfg.WeekStart)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error(), Err: err}
	}

	events, err := parseDates("events", cfg.Events)
	if err != nil {
		return nil, err
	}
	adds, err := parseDates("dates to add", cfg.DatesToAdd)
	if err != nil {
		return nil, err
	}
	dels, err := parseDates("dates to delete", cfg.DatesToDel)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	c := &Controller{
		id:        id,
		painter:   painter,
		logger:    o.logger.With("schedule", id.String()),
		dates:     o.dates,
		weekStart: weekStart,
		strict:    cfg.StrictBounds,
		engine: reconcile.Engine{
			Start: start,
			End:   end,
		},
	}

	seedable := func(d model.Date) bool { return c.engine.InRange(d) && d != start }
	c.engine.Events = model.NewDateSet(events...).Filter(c.engine.InRange)
	c.engine.ToDelete = model.NewDateSet(dels...).Filter(seedable)
	c.engine.ToAdd = model.NewDateSet(adds...).Filter(func(d model.Date) bool {
		return seedable(d) && !c.engine.ToDelete.Contains(d)
	})

	c.applyPattern(recurrence.Pattern{Kind: recurrence.ParseKind(cfg.Pattern), Weekdays: cfg.Weekdays})
	c.baseline = baseline{
		start:       start,
		end:         end,
		pattern:     clonePattern(c.pattern),
		autoWeekday: c.autoWeekday,
		toAdd:       c.engine.ToAdd.Clone(),
		toDelete:    c.engine.ToDelete.Clone(),
	}
	c.visible = model.MonthOf(start)

	c.logger.Info("schedule initialized",
		"start", start.String(),
		"end", end.String(),
		"pattern", string(c.pattern.Kind),
		"to_add", c.engine.ToAdd.Len(),
		"to_delete", c.engine.ToDelete.Len(),
	)
	c.paint(reconcile.PaintRepeatOn)
	return c, nil
}

func (c *Controller) ID() string { return c.id.String() }

func (c *Controller) Start() model.Date       { return c.engine.Start }
func (c *Controller) End() model.Date         { return c.engine.End }
func (c *Controller) Visible() model.Month    { return c.visible }
func (c *Controller) WeekStart() time.Weekday { return c.weekStart }

// CurrentPattern is the effective pattern, including an auto-selected
// weekday.
func (c *Controller) CurrentPattern() recurrence.Pattern { return clonePattern(c.pattern) }

// Events returns the pre-existing occurrences inside the range.
func (c *Controller) Events() []model.Date { return c.engine.Events.Dates() }

func (c *Controller) Resolve(d model.Date) model.ResolvedState { return c.engine.Resolve(d) }

func (c *Controller) Summary() reconcile.Summary { return c.engine.Summary() }

func (c *Controller) Exceptions() Exceptions {
	return Exceptions{ToAdd: c.engine.ToAdd.Dates(), ToDelete: c.engine.ToDelete.Dates()}
}

// Pattern returns the active rule, or None when the schedule does not
// repeat.
func (c *Controller) Pattern() mo.Option[recurrence.Rule] {
	if c.engine.Rule == nil {
		return mo.None[recurrence.Rule]()
	}
	return mo.Some(*c.engine.Rule)
}

// SetPattern switches the repeat pattern. Unknown kinds clear it. Weekdays
// only apply to the weekly kind; with none given the start date's weekday
// is selected.
func (c *Controller) SetPattern(kind string, weekdays ...time.Weekday) {
	c.switchPattern(recurrence.Pattern{Kind: recurrence.ParseKind(kind), Weekdays: weekdays})
}

// ToggleWeekday checks or unchecks wd in the weekly picker, switching to
// the weekly pattern first when another one is active. Unchecking the last
// weekday falls back to the start date's weekday.
func (c *Controller) ToggleWeekday(wd time.Weekday) {
	if wd < time.Sunday || wd > time.Saturday {
		return
	}
	if c.pattern.Kind != recurrence.KindWeekly {
		c.switchPattern(recurrence.Pattern{Kind: recurrence.KindWeekly, Weekdays: []time.Weekday{wd}})
		return
	}
	next := make([]time.Weekday, 0, len(c.pattern.Weekdays)+1)
	found := false
	for _, cur := range c.pattern.Weekdays {
		if cur == wd {
			found = true
			continue
		}
		next = append(next, cur)
	}
	if !found {
		next = append(next, wd)
	}
	c.switchPattern(recurrence.Pattern{Kind: recurrence.KindWeekly, Weekdays: next})
}

func (c *Controller) switchPattern(p recurrence.Pattern) {
	c.paint(reconcile.PaintClear)
	prev := c.pattern.Kind
	c.applyPattern(p)
	c.logger.Info("pattern changed", "from", string(prev), "to", string(c.pattern.Kind), "weekdays", fmt.Sprint(c.pattern.Weekdays))
	c.paint(reconcile.PaintRepeatOn)
}

// applyPattern rebuilds the rule for p against the current bounds.
func (c *Controller) applyPattern(p recurrence.Pattern) {
	if p.Kind != recurrence.KindWeekly {
		p.Weekdays = nil
	}
	days := make([]time.Weekday, 0, len(p.Weekdays))
	for _, wd := range p.Weekdays {
		if wd >= time.Sunday && wd <= time.Saturday {
			days = append(days, wd)
		}
	}
	p.Weekdays = days
	c.autoWeekday = p.Kind == recurrence.KindWeekly && len(days) == 0

	rule, err := recurrence.Configure(p, c.engine.Start, c.engine.End)
	if err != nil {
		c.logger.Warn("pattern rejected", "pattern", string(p.Kind), "error", err)
		rule = nil
	}
	c.engine.Rule = rule
	if rule == nil {
		c.pattern = recurrence.Pattern{Kind: recurrence.KindNone}
		c.autoWeekday = false
		return
	}
	c.pattern = rule.Pattern()
}

// rebuildRule re-anchors the active pattern after a bound change. An
// auto-selected weekday follows the new start date.
func (c *Controller) rebuildRule() {
	p := clonePattern(c.pattern)
	if c.autoWeekday {
		p.Weekdays = nil
	}
	c.applyPattern(p)
}

// OnDateActivated runs the toggle state machine for d and repaints.
func (c *Controller) OnDateActivated(d model.Date) reconcile.Transition {
	tr := c.engine.Toggle(d)
	if !tr.Changed {
		c.logger.Debug("activation ignored", "date", d.String(), "state", string(tr.From))
		return tr
	}
	c.logger.Debug("date toggled", "date", d.String(), "from", string(tr.From), "to", string(tr.To))
	c.announcement = tr.Announcement
	c.paint(reconcile.PaintRepeatOn)
	c.announcement = ""
	return tr
}

// ChangeStartDate moves the start bound and drops exceptions that fall
// before it. By default only entries in the new start's month with a lower
// day of month are dropped; strict bounds drop every earlier entry.
func (c *Controller) ChangeStartDate(d model.Date) error {
	if d.IsZero() {
		return model.ErrInvalidDate
	}
	if d.After(c.engine.End) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange, d, c.engine.End)
	}
	// EarlierDayOfMonth keeps out-of-range entries from
	// earlier months. They resolve inactive but still count in the summary.
	drop := model.EarlierDayOfMonth(d)
	if c.strict {
		drop = model.BeforeDate(d)
	}
	// The new start becomes fixed, so it leaves both sets too.
	c.dropExceptions(func(x model.Date) bool { return drop(x) || x == d })
	c.engine.Start = d
	c.rebuildRule()
	if c.visible.Before(model.MonthOf(d)) {
		c.visible = model.MonthOf(d)
	}
	c.logger.Info("start date changed", "start", d.String(), "to_add", c.engine.ToAdd.Len(), "to_delete", c.engine.ToDelete.Len())
	c.paint(reconcile.PaintRepeatOn)
	return nil
}

// ChangeEndDate is the end-bound counterpart of ChangeStartDate.
func (c *Controller) ChangeEndDate(d model.Date) error {
	if d.IsZero() {
		return model.ErrInvalidDate
	}
	if d.Before(c.engine.Start) {
		return fmt.Errorf("%w: end %s is before start %s", ErrInvalidRange, d, c.engine.Start)
	}
	drop := model.LaterDayOfMonth(d)
	if c.strict {
		drop = model.AfterDate(d)
	}
	c.dropExceptions(drop)
	c.engine.End = d
	c.rebuildRule()
	if c.visible.After(model.MonthOf(d)) {
		c.visible = model.MonthOf(d)
	}
	c.logger.Info("end date changed", "end", d.String(), "to_add", c.engine.ToAdd.Len(), "to_delete", c.engine.ToDelete.Len())
	c.paint(reconcile.PaintRepeatOn)
	return nil
}

func (c *Controller) dropExceptions(drop model.DatePredicate) {
	c.engine.ToAdd = c.engine.ToAdd.RemoveWhere(drop)
	c.engine.ToDelete = c.engine.ToDelete.RemoveWhere(drop)
}

// Reset restores the snapshot taken by Initialize and returns to the
// start month.
func (c *Controller) Reset() {
	b := c.baseline
	c.engine.Start = b.start
	c.engine.End = b.end
	c.engine.ToAdd = b.toAdd.Clone()
	c.engine.ToDelete = b.toDelete.Clone()
	p := clonePattern(b.pattern)
	if b.autoWeekday {
		p.Weekdays = nil
	}
	c.applyPattern(p)
	c.visible = model.MonthOf(b.start)
	c.logger.Info("schedule reset")
	c.paint(reconcile.PaintRepeatOn)
}

// GotoMonth shows m, clamped to the months spanned by the schedule.
func (c *Controller) GotoMonth(m model.Month) {
	first, last := model.MonthOf(c.engine.Start), model.MonthOf(c.engine.End)
	switch {
	case m.Before(first):
		m = first
	case m.After(last):
		m = last
	}
	if m == c.visible {
		return
	}
	c.visible = m
	c.paint(reconcile.PaintRepeatOn)
}

// NextMonth reports whether the visible month moved.
func (c *Controller) NextMonth() bool {
	prev := c.visible
	c.GotoMonth(c.visible.Next())
	return c.visible != prev
}

func (c *Controller) PrevMonth() bool {
	prev := c.visible
	c.GotoMonth(c.visible.Prev())
	return c.visible != prev
}

// Frame renders the visible month without notifying the painter.
func (c *Controller) Frame() Frame {
	return c.frame(c.visible, reconcile.PaintRepeatOn)
}

// FrameFor renders m, which need not be the visible month.
func (c *Controller) FrameFor(m model.Month) Frame {
	return c.frame(m, reconcile.PaintRepeatOn)
}

func (c *Controller) frame(m model.Month, method reconcile.PaintMethod) Frame {
	return Frame{
		ID:                   c.id.String(),
		Month:                m,
		Method:               method,
		Days:                 c.engine.PaintMonth(m, method),
		Summary:              c.engine.Summary(),
		Pattern:              clonePattern(c.pattern),
		PatternLabel:         c.pattern.Describe(c.engine.Start),
		WeekdayPickerVisible: c.pattern.Kind == recurrence.KindWeekly,
		Announcement:         c.announcement,
		Start:                c.engine.Start,
		End:                  c.engine.End,
		WeekStart:            c.weekStart,
		CanPrev:              m.After(model.MonthOf(c.engine.Start)),
		CanNext:              m.Before(model.MonthOf(c.engine.End)),
	}
}

func (c *Controller) paint(method reconcile.PaintMethod) {
	c.painter.Paint(c.frame(c.visible, method))
}

func clonePattern(p recurrence.Pattern) recurrence.Pattern {
	out := recurrence.Pattern{Kind: p.Kind}
	if len(p.Weekdays) > 0 {
		out.Weekdays = append([]time.Weekday(nil), p.Weekdays...)
	}
	return out
}
