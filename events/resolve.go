package events

import (
	"sort"

	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// OCCURRENCE
// =============================================================================

// Occurrence is one dated instance of a calendar category.
type Occurrence struct {
	Title    string
	Category string
	Start    generic.TimePoint
	End      generic.TimePoint
}

// Period is the inclusive day range the occurrence runs over.
func (o Occurrence) Period() generic.Period {
	return generic.Period{Start: o.Start, End: o.End}
}

// Key is the outcome log identity: "<category>_<start>_<end>".
func (o Occurrence) Key() string {
	return o.Category + "_" + o.Start.String() + "_" + o.End.String()
}

// WheelKey is the spin log identity: "wof_<start>_<end>".
func (o Occurrence) WheelKey() string {
	return "wof_" + o.Start.String() + "_" + o.End.String()
}

// =============================================================================
// STATE - Recomputed from dates on every call, never stored
// =============================================================================

type State string

const (
	StateUpcoming State = "upcoming"
	StateActive   State = "active"
	StatePast     State = "past"
)

// StateOf classifies an occurrence against today.
func StateOf(today generic.TimePoint, o Occurrence) State {
	p := o.Period()
	switch {
	case p.Contains(today):
		return StateActive
	case today.Before(p.Start):
		return StateUpcoming
	default:
		return StatePast
	}
}

// =============================================================================
// OUTCOME LOG - Snapshot of the externally owned store
// =============================================================================

// OutcomeLog maps occurrence keys to logged tags.
type OutcomeLog map[string]Outcome

// OutcomeLogFromStrings adapts a store snapshot.
func OutcomeLogFromStrings(m map[string]string) OutcomeLog {
	log := make(OutcomeLog, len(m))
	for k, v := range m {
		log[k] = Outcome(v)
	}
	return log
}

// =============================================================================
// RESOLUTION
// =============================================================================

// ResolveInput is everything the resolver reads.
type ResolveInput struct {
	Today       generic.TimePoint
	HorizonEnd  generic.TimePoint
	Occurrences []Occurrence
	Outcomes    OutcomeLog
	Catalog     Catalog
}

// ResolvedOccurrence is one occurrence with its state and yield.
type ResolvedOccurrence struct {
	Key          string
	Occurrence   Occurrence
	State        State
	DefaultYield int
	Logged       Outcome // empty when unlogged
	Yield        int
	NeedsInput   bool
	DaysUntil    int // start - today; negative once started
}

// Resolve classifies every outcome-kind occurrence starting on or before
// the horizon end and resolves its yield.
//
// An active occurrence without a logged outcome yields 0 until the player
// confirms a result. Upcoming and past occurrences without a log assume
// the category default.
func Resolve(in ResolveInput) []ResolvedOccurrence {
	var rows []ResolvedOccurrence
	for _, o := range in.Occurrences {
		if o.Start.After(in.HorizonEnd) {
			continue
		}
		cat, ok := in.Catalog.Lookup(o.Category)
		if !ok || cat.Kind != KindOutcome {
			continue
		}

		key := o.Key()
		state := StateOf(in.Today, o)
		logged, hasLog := in.Outcomes[key]

		row := ResolvedOccurrence{
			Key:          key,
			Occurrence:   o,
			State:        state,
			DefaultYield: cat.Default,
			DaysUntil:    generic.DaysBetween(in.Today, o.Start),
		}
		if hasLog {
			row.Logged = logged
		}

		if state == StateActive && !hasLog {
			row.NeedsInput = true
			row.Yield = 0
		} else {
			row.Yield = cat.Yield(row.Logged)
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Occurrence.Start.Before(rows[j].Occurrence.Start)
	})
	return rows
}

// TotalYield sums resolved yields.
func TotalYield(rows []ResolvedOccurrence) int {
	total := 0
	for _, r := range rows {
		total += r.Yield
	}
	return total
}

// Active returns rows currently running.
func Active(rows []ResolvedOccurrence) []ResolvedOccurrence {
	return filterState(rows, StateActive)
}

// Upcoming returns rows that have not started.
func Upcoming(rows []ResolvedOccurrence) []ResolvedOccurrence {
	return filterState(rows, StateUpcoming)
}

func filterState(rows []ResolvedOccurrence, s State) []ResolvedOccurrence {
	var out []ResolvedOccurrence
	for _, r := range rows {
		if r.State == s {
			out = append(out, r)
		}
	}
	return out
}

// =============================================================================
// WHEEL OCCURRENCES
// =============================================================================

// WheelOccurrence is a spins-kind occurrence within the horizon.
type WheelOccurrence struct {
	Key        string
	Occurrence Occurrence
	State      State
	DaysUntil  int
}

// WheelOccurrences selects spins-kind occurrences starting on or before the
// horizon end, sorted by start date.
func WheelOccurrences(today, horizonEnd generic.TimePoint, occs []Occurrence, catalog Catalog) []WheelOccurrence {
	var out []WheelOccurrence
	for _, o := range occs {
		if o.Start.After(horizonEnd) {
			continue
		}
		cat, ok := catalog.Lookup(o.Category)
		if !ok || cat.Kind != KindSpins {
			continue
		}
		out = append(out, WheelOccurrence{
			Key:        o.WheelKey(),
			Occurrence: o,
			State:      StateOf(today, o),
			DaysUntil:  generic.DaysBetween(today, o.Start),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrence.Start.Before(out[j].Occurrence.Start)
	})
	return out
}

// WheelsLeft counts wheel occurrences that are not over yet.
func WheelsLeft(wheels []WheelOccurrence) int {
	n := 0
	for _, w := range wheels {
		if w.State != StatePast {
			n++
		}
	}
	return n
}
