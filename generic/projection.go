/*
projection.go - Cumulative income projection

PURPOSE:
  Turns a recurring accrual schedule plus a set of one-off lumps into a
  day-indexed cumulative series. Answers "how much will I have by day N?"
  for every N in the horizon.

CHANNELS:
  Recurring: the schedule's per-day amount, added every day from day 0.
  Events:    lump yields of calendar occurrences.
  Spins:     lump yields of planned spins.
  Total:     sum of the three on each day.

KEY INSIGHT:
  Lumps are front-loaded: an occurrence's full yield lands on the day
  matching its offset, not spread across its duration. The curve is a
  step function. Lumps with an offset past the horizon never land.

HORIZON:
  Days 0..max(1, Horizon) inclusive, so even a zero-day horizon yields two
  points.

EXAMPLE:
  engine := &ProjectionEngine{Unit: UnitHeads}
  points := engine.Project(ProjectionInput{
      Schedule: DailyAccrual{Rate: NewAmountFromInt(2, UnitHeads)},
      Horizon:  30,
      Lumps:    []Lump{{Offset: 5, Channel: ChannelEvents, Amount: heads(10)}},
  })
  // points[5].Events == 10, points[30].Recurring == 62

SEE ALSO:
  - accrual.go: AccrualSchedule interface
  - forecast/projection.go: Domain composition (VIP, events, wheel)
*/
package generic

// =============================================================================
// PROJECTION ENGINE - Builds cumulative series
// =============================================================================

// Channel identifies which cumulative series a lump feeds.
type Channel string

const (
	ChannelEvents Channel = "events"
	ChannelSpins  Channel = "spins"
)

// Lump is a one-off yield anchored to a day offset.
type Lump struct {
	Offset  int
	Channel Channel
	Amount  Amount
	Ref     string
}

// ProjectionInput contains all inputs for a projection
type ProjectionInput struct {
	Schedule AccrualSchedule // nil = no recurring income
	Horizon  int
	Lumps    []Lump
}

// ProjectionPoint is one day's cumulative breakdown.
type ProjectionPoint struct {
	Day       int
	Recurring Amount
	Events    Amount
	Spins     Amount
	Total     Amount
}

// ProjectionEngine builds cumulative series in a single unit.
type ProjectionEngine struct {
	Unit Unit
}

// Project returns points for day offsets 0..max(1, Horizon).
func (pe *ProjectionEngine) Project(input ProjectionInput) []ProjectionPoint {
	last := input.Horizon
	if last < 1 {
		last = 1
	}

	eventsByDay := make(map[int]Amount)
	spinsByDay := make(map[int]Amount)
	for _, l := range input.Lumps {
		offset := l.Offset
		if offset < 0 {
			offset = 0
		}
		switch l.Channel {
		case ChannelEvents:
			eventsByDay[offset] = pe.orZero(eventsByDay[offset]).Add(l.Amount)
		case ChannelSpins:
			spinsByDay[offset] = pe.orZero(spinsByDay[offset]).Add(l.Amount)
		}
	}

	var (
		recurring = ZeroAmount(pe.Unit)
		events    = ZeroAmount(pe.Unit)
		spins     = ZeroAmount(pe.Unit)
	)

	points := make([]ProjectionPoint, 0, last+1)
	for d := 0; d <= last; d++ {
		if input.Schedule != nil {
			recurring = recurring.Add(input.Schedule.PerDay(d))
		}
		if a, ok := eventsByDay[d]; ok {
			events = events.Add(a)
		}
		if a, ok := spinsByDay[d]; ok {
			spins = spins.Add(a)
		}
		points = append(points, ProjectionPoint{
			Day:       d,
			Recurring: recurring,
			Events:    events,
			Spins:     spins,
			Total:     recurring.Add(events).Add(spins),
		})
	}
	return points
}

func (pe *ProjectionEngine) orZero(a Amount) Amount {
	if a.Unit == "" {
		return ZeroAmount(pe.Unit)
	}
	return a
}

// Final returns the last point of a series, or a zero point when empty.
func Final(points []ProjectionPoint, unit Unit) ProjectionPoint {
	if len(points) == 0 {
		z := ZeroAmount(unit)
		return ProjectionPoint{Recurring: z, Events: z, Spins: z, Total: z}
	}
	return points[len(points)-1]
}
