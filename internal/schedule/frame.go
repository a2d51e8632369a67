package schedule

import (
	"time"

	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/reconcile"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
)

// Frame is everything a renderer needs to draw one month of the widget.
type Frame struct {
	ID                   string
	Month                model.Month
	Method               reconcile.PaintMethod
	Days                 []reconcile.DayState
	Summary              reconcile.Summary
	Pattern              recurrence.Pattern
	PatternLabel         string
	WeekdayPickerVisible bool
	Announcement         string
	Start                model.Date
	End                  model.Date
	WeekStart            time.Weekday
	CanPrev              bool
	CanNext              bool
}

// State returns the painted state of d, or "" when d is not in the frame.
func (f Frame) State(d model.Date) model.ResolvedState {
	if !f.Month.Contains(d) {
		return ""
	}
	return f.Days[d.Day()-1].State
}

// Painter receives every repaint. Paint must not call back into the
// controller.
type Painter interface {
	Paint(Frame)
}

type PainterFunc func(Frame)

func (f PainterFunc) Paint(frame Frame) { f(frame) }
