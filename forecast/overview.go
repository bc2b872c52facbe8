package forecast

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/wheel"
)

// =============================================================================
// OVERVIEW - Totals and deficits for one profile
// =============================================================================

// GoalSummary is one goal's cost and the share of projected income credited to it.
type GoalSummary struct {
	Goal          commander.Goal
	Cost          commander.UpgradeCost
	CreditedHeads int // floor(expected * pct / 100)
	CoveragePct   int // min(100, credited / needed)
}

// Summary is the overall picture for a profile. Shortfalls are plain
// numbers for the caller to display; nothing here is an error.
type Summary struct {
	VIPPerDay         int
	VIPTotal          int
	EventHeads        int
	WheelSpinsPlanned int
	WheelHeads        int
	WheelsLeft        int
	TotalExpected     int
	TotalNeeded       int
	Missing           int
	CompletionPct     int
	NeedsInput        int // active occurrences waiting for a logged outcome
	EventsUpcoming    int // outcome occurrences not started yet

	Goals []GoalSummary

	WheelPlan     wheel.Plan
	GemsAvailable int
	GemShortfall  int
}

// Overview summarizes projected income against goal needs.
func Overview(in Input) Summary {
	var s Summary

	s.VIPPerDay = in.Tables.VIPIncome.PerDay(in.Profile.VIPLevel)
	days := in.Profile.DaysUntilGoal
	if days < 0 {
		days = 0
	}
	// one accrual per day after today; the projection also counts day 0
	s.VIPTotal = generic.Total(VIPSchedule(in), in.Today.AddDays(1), in.Today.AddDays(days), generic.UnitHeads).Int()

	occRows := ResolveOccurrences(in)
	s.EventHeads = events.TotalYield(occRows)
	for _, r := range events.Active(occRows) {
		if r.NeedsInput {
			s.NeedsInput++
		}
	}
	s.EventsUpcoming = len(events.Upcoming(occRows))

	rows := Wheels(in)
	occs := make([]events.WheelOccurrence, len(rows))
	for i, w := range rows {
		s.WheelSpinsPlanned += w.PlannedSpins
		occs[i] = w.WheelOccurrence
	}
	s.WheelsLeft = events.WheelsLeft(occs)
	s.WheelHeads = int(wheel.ExpectedHeads(in.Tables.Wheel, s.WheelSpinsPlanned).Floor().IntPart())

	s.TotalExpected = s.VIPTotal + s.EventHeads + s.WheelHeads
	s.TotalNeeded = commander.TotalNeeded(in.Tables.Costs, in.Goals)
	if s.TotalNeeded > s.TotalExpected {
		s.Missing = s.TotalNeeded - s.TotalExpected
	}
	s.CompletionPct = percentOf(s.TotalExpected, s.TotalNeeded)

	expected := decimal.NewFromInt(int64(s.TotalExpected))
	for _, g := range in.Goals {
		cost := g.Cost(in.Tables.Costs)
		credited := int(expected.Mul(decimal.NewFromInt(int64(g.AllocationPct))).
			Div(decimal.NewFromInt(100)).Floor().IntPart())
		s.Goals = append(s.Goals, GoalSummary{
			Goal:          g,
			Cost:          cost,
			CreditedHeads: credited,
			CoveragePct:   percentOf(credited, cost.Needed),
		})
	}

	s.WheelPlan = wheel.PlanSpins(in.Tables.Wheel, in.Profile.WheelTargetSpins, in.Profile.WheelBundles)
	s.GemsAvailable = in.Profile.CurrentGems + in.Profile.DailyGemIncome*days + s.WheelPlan.BonusGems
	if s.WheelPlan.TotalGems > s.GemsAvailable {
		s.GemShortfall = s.WheelPlan.TotalGems - s.GemsAvailable
	}
	return s
}

// FinalTotal is the last cumulative total of a projection, in whole heads.
func FinalTotal(p Projection) int {
	return generic.Final(p.Points, generic.UnitHeads).Total.Int()
}

// percentOf returns min(100, round(part/whole*100)), 0 when whole is 0.
func percentOf(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	pct := int(math.Round(float64(part) / float64(whole) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}
