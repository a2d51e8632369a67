package reconcile

import (
	"github.com/sandeepkv93/recurcal/internal/model"
	"github.com/sandeepkv93/recurcal/internal/recurrence"
)

// PaintMethod selects whether a month paint includes pattern occurrences.
// A pattern switch paints PaintClear for the old pattern before painting
// PaintRepeatOn for the new one.
type PaintMethod string

const (
	PaintClear    PaintMethod = "clear"
	PaintRepeatOn PaintMethod = "repeat"
)

// Engine resolves per-day state from the canonical schedule inputs. The
// exception sets are the only mutable source of truth: resolved state is
// derived on demand and never written back.
type Engine struct {
	Start model.Date
	End   model.Date
	// Rule is nil when no pattern is active.
	Rule     *recurrence.Rule
	Events   *model.DateSet
	ToAdd    *model.DateSet
	ToDelete *model.DateSet
}

// DayState is one painted grid cell.
type DayState struct {
	Date  model.Date
	State model.ResolvedState
}

// Transition describes the effect of activating one day.
type Transition struct {
	Date         model.Date
	From         model.ResolvedState
	To           model.ResolvedState
	Changed      bool
	Announcement string
}

func (e *Engine) InRange(d model.Date) bool {
	return d.Within(e.Start, e.End)
}

func (e *Engine) matches(d model.Date) bool {
	return e.Rule != nil && e.Rule.Matches(d)
}

// Resolve classifies d. Manual deletion wins over every occurrence source;
// a manual addition the pattern already covers resolves as a repeat.
func (e *Engine) Resolve(d model.Date) model.ResolvedState {
	switch {
	case !e.InRange(d):
		return model.StateInactive
	case d == e.Start:
		return model.StateFixed
	case e.ToDelete.Contains(d):
		return model.StateToDelete
	case e.matches(d):
		return model.StateRepeatOn
	case e.ToAdd.Contains(d):
		return model.StateToAdd
	case e.Events.Contains(d):
		return model.StateEvent
	default:
		return model.StateNeutral
	}
}

// PaintMonth resolves every day of m in layers: base state, pattern
// occurrences, manual additions, then manual deletions. Layers never touch
// inactive or fixed days.
func (e *Engine) PaintMonth(m model.Month, method PaintMethod) []DayState {
	days := m.Days()
	out := make([]DayState, len(days))
	index := make(map[model.Date]int, len(days))
	for i, d := range days {
		index[d] = i
		out[i] = DayState{Date: d, State: e.baseState(d)}
	}

	mark := func(d model.Date, state model.ResolvedState) bool {
		i, ok := index[d]
		if !ok {
			return false
		}
		if cur := out[i].State; cur == model.StateInactive || cur == model.StateFixed {
			return false
		}
		out[i].State = state
		return true
	}

	covered := make(map[model.Date]bool)
	if method == PaintRepeatOn && e.Rule != nil {
		from := model.MaxDate(e.Start, m.First())
		to := model.MinDate(e.End, m.Last())
		for _, d := range e.Rule.Between(from, to) {
			if mark(d, model.StateRepeatOn) {
				covered[d] = true
			}
		}
	}

	inMonth := model.InSameMonth(m.First())
	for _, d := range e.ToAdd.Filter(inMonth).Dates() {
		if covered[d] {
			continue
		}
		mark(d, model.StateToAdd)
	}
	for _, d := range e.ToDelete.Filter(inMonth).Dates() {
		mark(d, model.StateToDelete)
	}
	return out
}

func (e *Engine) baseState(d model.Date) model.ResolvedState {
	switch {
	case !e.InRange(d):
		return model.StateInactive
	case d == e.Start:
		return model.StateFixed
	case e.Events.Contains(d):
		return model.StateEvent
	default:
		return model.StateNeutral
	}
}

// Toggle applies the activation state machine to d and returns the
// resulting transition. Inactive and fixed days are left untouched.
func (e *Engine) Toggle(d model.Date) Transition {
	from := e.Resolve(d)
	tr := Transition{Date: d, From: from, To: from}
	if !from.Interactive() {
		return tr
	}

	switch {
	case e.matches(d):
		switch {
		case e.ToAdd.Contains(d):
			e.ToAdd.Remove(d)
			e.ToDelete.Add(d)
		case e.ToDelete.Contains(d):
			e.ToDelete.Remove(d)
		default:
			e.ToDelete.Add(d)
		}
	case e.ToAdd.Contains(d):
		e.ToAdd.Remove(d)
	case e.Events.Contains(d) || e.ToDelete.Contains(d):
		// A stray deletion outside the pattern is restored the same way as
		// a deleted event.
		if !e.ToDelete.Remove(d) {
			e.ToDelete.Add(d)
		}
	default:
		e.ToAdd.Add(d)
	}

	tr.To = e.Resolve(d)
	tr.Changed = tr.To != tr.From
	tr.Announcement = Announce(d, tr.To)
	return tr
}

// Announce is the status message read out after a day changes to state.
func Announce(d model.Date, state model.ResolvedState) string {
	long := d.FormatLong()
	switch state {
	case model.StateToAdd, model.StateEvent:
		return "Selected. Event will repeat on " + long
	case model.StateToDelete:
		return "Removed. Event will no longer repeat on " + long
	case model.StateRepeatOn:
		return "Event will repeat on " + long + " based on the chosen repeat pattern"
	case model.StateNeutral:
		return "Unselected. Event will not repeat on " + long
	default:
		return ""
	}
}
