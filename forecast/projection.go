package forecast

import (
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/wheel"
)

// Projection is the cumulative series plus the rows it was built from.
type Projection struct {
	Points      []generic.ProjectionPoint
	Occurrences []events.ResolvedOccurrence
	Wheels      []WheelRow
}

// WheelRow is a wheel occurrence with its planned spins and expected heads.
type WheelRow struct {
	events.WheelOccurrence
	PlannedSpins  int
	ExpectedHeads int
}

// ResolveOccurrences runs the outcome resolver over the input's horizon.
func ResolveOccurrences(in Input) []events.ResolvedOccurrence {
	return events.Resolve(events.ResolveInput{
		Today:       in.Today,
		HorizonEnd:  in.Horizon().End,
		Occurrences: in.Occurrences,
		Outcomes:    in.Outcomes,
		Catalog:     in.Tables.Categories,
	})
}

// Wheels lists wheel occurrences in the horizon with their planned spins.
// Expected heads are floored per occurrence.
func Wheels(in Input) []WheelRow {
	occs := events.WheelOccurrences(in.Today, in.Horizon().End, in.Occurrences, in.Tables.Categories)
	rows := make([]WheelRow, 0, len(occs))
	for _, w := range occs {
		spins := in.Spins[w.Key]
		if spins < 0 {
			spins = 0
		}
		rows = append(rows, WheelRow{
			WheelOccurrence: w,
			PlannedSpins:    spins,
			ExpectedHeads:   int(wheel.ExpectedHeads(in.Tables.Wheel, spins).Floor().IntPart()),
		})
	}
	return rows
}

// VIPSchedule is the recurring channel for a profile.
func VIPSchedule(in Input) generic.DailyAccrual {
	return generic.DailyAccrual{
		Rate:   generic.NewAmountFromInt(in.Tables.VIPIncome.PerDay(in.Profile.VIPLevel), generic.UnitHeads),
		Reason: "vip",
	}
}

// Project builds the day-indexed cumulative head series for a profile.
func Project(in Input) Projection {
	occRows := ResolveOccurrences(in)
	wheelRows := Wheels(in)

	var lumps []generic.Lump
	for _, r := range occRows {
		lumps = append(lumps, generic.Lump{
			Offset:  generic.DayOffset(in.Today, r.Occurrence.Start),
			Channel: generic.ChannelEvents,
			Amount:  generic.NewAmountFromInt(r.Yield, generic.UnitHeads),
			Ref:     r.Key,
		})
	}
	for _, w := range wheelRows {
		if w.PlannedSpins <= 0 {
			continue
		}
		lumps = append(lumps, generic.Lump{
			Offset:  generic.DayOffset(in.Today, w.Occurrence.Start),
			Channel: generic.ChannelSpins,
			Amount:  generic.NewAmountFromInt(w.ExpectedHeads, generic.UnitHeads),
			Ref:     w.Key,
		})
	}

	engine := &generic.ProjectionEngine{Unit: generic.UnitHeads}
	points := engine.Project(generic.ProjectionInput{
		Schedule: VIPSchedule(in),
		Horizon:  in.Profile.DaysUntilGoal,
		Lumps:    lumps,
	})

	return Projection{Points: points, Occurrences: occRows, Wheels: wheelRows}
}
