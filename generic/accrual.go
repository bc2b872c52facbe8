package generic

// =============================================================================
// ACCRUAL SCHEDULE - Interface for how recurring income accumulates
// =============================================================================

// AccrualSchedule generates accrual events for a time range.
// Implementations define the business logic (flat daily rate, tiered, ...).
type AccrualSchedule interface {
	// GenerateAccruals returns accrual events in [from, to].
	GenerateAccruals(from, to TimePoint) []AccrualEvent

	// PerDay returns the amount accrued on a single day offset from the
	// schedule's anchor. Used by the projection engine's day loop.
	PerDay(day int) Amount
}

// AccrualEvent represents a single accrual occurrence.
type AccrualEvent struct {
	At     TimePoint
	Amount Amount
	Reason string
}

// =============================================================================
// DAILY ACCRUAL - Flat rate every day
// =============================================================================

// DailyAccrual credits the same amount every day, including the first.
type DailyAccrual struct {
	Rate   Amount
	Reason string
}

func (d DailyAccrual) PerDay(int) Amount { return d.Rate }

func (d DailyAccrual) GenerateAccruals(from, to TimePoint) []AccrualEvent {
	if d.Rate.IsZero() {
		return nil
	}
	var events []AccrualEvent
	for current := from; current.BeforeOrEqual(to); current = current.AddDays(1) {
		events = append(events, AccrualEvent{At: current, Amount: d.Rate, Reason: d.Reason})
	}
	return events
}

// Total sums accruals in [from, to].
func Total(schedule AccrualSchedule, from, to TimePoint, unit Unit) Amount {
	total := ZeroAmount(unit)
	for _, e := range schedule.GenerateAccruals(from, to) {
		total = total.Add(e.Amount)
	}
	return total
}
