package model

// DatePredicate selects dates from a DateSet.
type DatePredicate func(Date) bool

func Not(pred DatePredicate) DatePredicate {
	return func(d Date) bool { return !pred(d) }
}

// InMonth compares only the month number, ignoring the year.
func InMonth(ref Date) DatePredicate {
	return func(d Date) bool { return d.Month() == ref.Month() }
}

func InYear(ref Date) DatePredicate {
	return func(d Date) bool { return d.Year() == ref.Year() }
}

func InSameMonth(ref Date) DatePredicate {
	return func(d Date) bool { return InYear(ref)(d) && InMonth(ref)(d) }
}

func MatchesDate(ref Date) DatePredicate {
	return func(d Date) bool { return d == ref }
}

func DoesNotMatchDate(ref Date) DatePredicate {
	return Not(MatchesDate(ref))
}

func BeforeDate(ref Date) DatePredicate {
	return func(d Date) bool { return d.Before(ref) }
}

func AfterDate(ref Date) DatePredicate {
	return func(d Date) bool { return d.After(ref) }
}

// EarlierDayOfMonth matches dates in ref's month and year whose day of
// month is lower than ref's. Dates in earlier months never match.
func EarlierDayOfMonth(ref Date) DatePredicate {
	return func(d Date) bool { return InSameMonth(ref)(d) && d.Day() < ref.Day() }
}

// LaterDayOfMonth is the end-bound counterpart of EarlierDayOfMonth.
func LaterDayOfMonth(ref Date) DatePredicate {
	return func(d Date) bool { return InSameMonth(ref)(d) && d.Day() > ref.Day() }
}
