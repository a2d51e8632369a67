package model

// ResolvedState is the derived classification of one calendar day. It is
// recomputed on every paint and never stored back into the schedule.
type ResolvedState string

const (
	StateInactive ResolvedState = "inactive"
	StateFixed    ResolvedState = "fixed"
	StateNeutral  ResolvedState = "neutral"
	StateRepeatOn ResolvedState = "repeat"
	StateToAdd    ResolvedState = "to-add"
	StateToDelete ResolvedState = "to-delete"
	StateEvent    ResolvedState = "event"
)

func (s ResolvedState) IsValid() bool {
	switch s {
	case StateInactive, StateFixed, StateNeutral, StateRepeatOn, StateToAdd, StateToDelete, StateEvent:
		return true
	default:
		return false
	}
}

// Interactive reports whether activating a day in this state may change it.
func (s ResolvedState) Interactive() bool {
	return s.IsValid() && s != StateInactive && s != StateFixed
}

// Occurs reports whether the event will take place on a day in this state.
func (s ResolvedState) Occurs() bool {
	switch s {
	case StateFixed, StateRepeatOn, StateToAdd, StateEvent:
		return true
	default:
		return false
	}
}

