package model

// DateSet is an insertion-ordered set of calendar days. The zero value is
// an empty set ready to use.
type DateSet struct {
	dates []Date
	index map[Date]struct{}
}

func NewDateSet(dates ...Date) *DateSet {
	s := &DateSet{}
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s *DateSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dates)
}

func (s *DateSet) IsEmpty() bool { return s.Len() == 0 }

func (s *DateSet) Contains(d Date) bool {
	if s == nil || s.index == nil {
		return false
	}
	_, ok := s.index[d]
	return ok
}

// Add inserts d and reports whether it was absent.
func (s *DateSet) Add(d Date) bool {
	if s.Contains(d) {
		return false
	}
	if s.index == nil {
		s.index = make(map[Date]struct{})
	}
	s.index[d] = struct{}{}
	s.dates = append(s.dates, d)
	return true
}

// Remove deletes d in place and reports whether it was present.
func (s *DateSet) Remove(d Date) bool {
	if !s.Contains(d) {
		return false
	}
	delete(s.index, d)
	for i, item := range s.dates {
		if item == d {
			s.dates = append(s.dates[:i], s.dates[i+1:]...)
			break
		}
	}
	return true
}

// RemoveWhere returns a new set without the dates matching pred.
func (s *DateSet) RemoveWhere(pred DatePredicate) *DateSet {
	return s.Filter(Not(pred))
}

// Filter returns a new set holding the dates matching pred, in order.
func (s *DateSet) Filter(pred DatePredicate) *DateSet {
	out := &DateSet{}
	if s == nil {
		return out
	}
	for _, d := range s.dates {
		if pred(d) {
			out.Add(d)
		}
	}
	return out
}

func (s *DateSet) First() (Date, bool) {
	if s.Len() == 0 {
		return Date{}, false
	}
	return s.dates[0], true
}

// Dates returns a copy of the members in insertion order.
func (s *DateSet) Dates() []Date {
	if s == nil {
		return []Date{}
	}
	out := make([]Date, len(s.dates))
	copy(out, s.dates)
	return out
}

func (s *DateSet) Clone() *DateSet {
	return s.Filter(func(Date) bool { return true })
}

// Strings formats the members with DateLayout.
func (s *DateSet) Strings() []string {
	out := make([]string, 0, s.Len())
	for _, d := range s.Dates() {
		out = append(out, d.String())
	}
	return out
}
