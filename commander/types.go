/*
Package commander provides the goal side of the planner: commanders whose
skills are upgraded with heads.

PURPOSE:
  A goal is one commander with a current and a target skill vector. The
  heads it still needs come from a tiered cost table keyed by rarity, skill
  slot and level. Goals on one profile share pooled head income by
  percentage.

KEY CONCEPTS:
  - Rarity: legendary or epic; selects the cost table
  - SkillSet: four skill levels, each in [1,5]
  - Goal: a commander, its skill vectors and its allocation share
  - UpgradeCost: invested / needed / total heads for a goal

SEE ALSO:
  - cost.go: HeadsNeeded calculator
  - goals.go: Allocation rebalancing on goal lists
  - factory/catalog.go: Where cost tables are loaded from
*/
package commander

import (
	"github.com/google/uuid"

	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// RARITY
// =============================================================================

type Rarity string

const (
	RarityLegendary Rarity = "legendary"
	RarityEpic      Rarity = "epic"
)

func (r Rarity) Valid() bool {
	return r == RarityLegendary || r == RarityEpic
}

// =============================================================================
// SKILL SET
// =============================================================================

const (
	SkillSlots    = 4
	MinSkillLevel = 1
	MaxSkillLevel = 5
)

// SkillSet holds the four skill levels of a commander.
type SkillSet [SkillSlots]int

// Clamp forces every level into [MinSkillLevel, MaxSkillLevel].
func (s SkillSet) Clamp() SkillSet {
	var out SkillSet
	for i, lvl := range s {
		out[i] = ClampLevel(lvl)
	}
	return out
}

func ClampLevel(lvl int) int {
	if lvl < MinSkillLevel {
		return MinSkillLevel
	}
	if lvl > MaxSkillLevel {
		return MaxSkillLevel
	}
	return lvl
}

// SkillSetFromSlice copies up to four levels; missing slots default to 1.
func SkillSetFromSlice(levels []int) SkillSet {
	s := SkillSet{MinSkillLevel, MinSkillLevel, MinSkillLevel, MinSkillLevel}
	for i := 0; i < len(levels) && i < SkillSlots; i++ {
		s[i] = levels[i]
	}
	return s.Clamp()
}

// =============================================================================
// GOAL
// =============================================================================

type Goal struct {
	ID            generic.GoalID
	Name          string
	Rarity        Rarity
	Current       SkillSet
	Target        SkillSet
	AllocationPct int
}

// Defaults for a freshly added commander: first skill maxed, aiming for 5-5-1-1.
var (
	DefaultCurrent = SkillSet{5, 1, 1, 1}
	DefaultTarget  = SkillSet{5, 5, 1, 1}
)

// NewGoal creates a legendary goal with default skill vectors and a full share.
// The share is corrected by AddGoal once the goal joins a list.
func NewGoal(name string) Goal {
	return Goal{
		ID:            generic.GoalID(uuid.NewString()),
		Name:          name,
		Rarity:        RarityLegendary,
		Current:       DefaultCurrent,
		Target:        DefaultTarget,
		AllocationPct: 100,
	}
}
