package generic

// =============================================================================
// PERIOD - Inclusive day range
// =============================================================================

// Period is an inclusive [Start, End] range of days. Calendar occurrences
// and planning horizons are both periods.
type Period struct {
	Start TimePoint
	End   TimePoint
}

// HorizonFrom returns the planning window [today, today+days].
func HorizonFrom(today TimePoint, days int) Period {
	if days < 0 {
		days = 0
	}
	return Period{Start: today, End: today.AddDays(days)}
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Validate rejects periods whose end precedes their start.
func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}

// Days returns the number of days in the period, counting both ends.
func (p Period) Days() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
