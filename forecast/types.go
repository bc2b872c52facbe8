/*
Package forecast composes the planner's income channels into projections.

PURPOSE:
  A profile earns heads three ways: a flat daily VIP rate, calendar events
  resolved through their outcomes, and planned wheel spins. This package
  merges them over the profile's horizon and compares the result with what
  its commander goals still need.

CHANNELS:
  Recurring - VIP heads per day, looked up by VIP level
  Events    - resolved occurrence yields, front-loaded on their start day
  Spins     - expected heads of planned spins per wheel occurrence,
              floored per occurrence, front-loaded on its start day

OUTPUTS:
  Project:  day-indexed cumulative series
  Overview: totals, deficits, completion and per-goal credit

SEE ALSO:
  - generic/projection.go: Series builder
  - events/resolve.go: Occurrence yields
  - wheel/plan.go: Spin yields
*/
package forecast

import (
	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/wheel"
)

// =============================================================================
// STATIC TABLES
// =============================================================================

// IncomeTable is heads per day indexed by VIP level.
type IncomeTable []int

// PerDay returns the daily rate for a level; unknown levels earn nothing.
func (t IncomeTable) PerDay(level int) int {
	if level < 0 || level >= len(t) {
		return 0
	}
	return t[level]
}

// Tables bundles every static lookup the engine reads.
type Tables struct {
	Costs      commander.CostTable
	Wheel      wheel.Config
	Categories events.Catalog
	VIPIncome  IncomeTable
}

// =============================================================================
// PROFILE
// =============================================================================

// Profile is the engine's view of an account.
type Profile struct {
	ID               generic.ProfileID
	Name             string
	Kingdom          string
	VIPLevel         int
	CurrentGems      int
	DailyGemIncome   int
	DaysUntilGoal    int
	WheelTargetSpins int
	WheelBundles     map[string]bool
}

const (
	DefaultVIPLevel      = 10
	DefaultDaysUntilGoal = 30
	MaxVIPLevel          = 17
	MaxDaysUntilGoal     = 1000
)

// DefaultProfile is a fresh account: VIP 10, a 30 day horizon.
func DefaultProfile(id generic.ProfileID, name string) Profile {
	if name == "" {
		name = "My Account"
	}
	return Profile{
		ID:            id,
		Name:          name,
		VIPLevel:      DefaultVIPLevel,
		DaysUntilGoal: DefaultDaysUntilGoal,
		WheelBundles:  map[string]bool{},
	}
}

// SpinLog maps wheel occurrence keys to planned spins.
type SpinLog map[string]int

// =============================================================================
// INPUT
// =============================================================================

// Input is a full snapshot for one profile.
type Input struct {
	Today       generic.TimePoint
	Profile     Profile
	Goals       []commander.Goal
	Occurrences []events.Occurrence
	Outcomes    events.OutcomeLog
	Spins       SpinLog
	Tables      Tables
}

// Horizon is the planning window [today, today+DaysUntilGoal].
func (in Input) Horizon() generic.Period {
	return generic.HorizonFrom(in.Today, in.Profile.DaysUntilGoal)
}
