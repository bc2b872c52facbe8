package commander

import (
	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// GOAL LIST OPERATIONS - Every function returns a fresh slice
// =============================================================================

// AddGoal appends g and resets all shares to an equal split.
func AddGoal(goals []Goal, g Goal) []Goal {
	out := make([]Goal, 0, len(goals)+1)
	out = append(out, goals...)
	out = append(out, g)
	return equalize(out)
}

// RemoveGoal drops the goal with id and resets the rest to an equal split.
// Removing the last goal yields an empty list.
func RemoveGoal(goals []Goal, id generic.GoalID) ([]Goal, error) {
	out := make([]Goal, 0, len(goals))
	found := false
	for _, g := range goals {
		if g.ID == id {
			found = true
			continue
		}
		out = append(out, g)
	}
	if !found {
		return nil, generic.ErrGoalNotFound
	}
	return equalize(out), nil
}

// SetAllocation sets one goal's share to pct (clamped to [0,100]) and
// scales the others proportionally so the total stays 100. A lone goal
// always keeps 100.
func SetAllocation(goals []Goal, id generic.GoalID, pct int) ([]Goal, error) {
	if indexOf(goals, id) < 0 {
		return nil, generic.ErrGoalNotFound
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	shares := make([]generic.Share, len(goals))
	for i, g := range goals {
		shares[i] = generic.Share{ID: string(g.ID), Pct: g.AllocationPct}
	}
	shares = generic.Rebalance(shares, string(id), pct)

	out := make([]Goal, len(goals))
	for i, g := range goals {
		g.AllocationPct = shares[i].Pct
		out[i] = g
	}
	return out, nil
}

// UpdateLevels replaces a goal's skill vectors, clamping both to [1,5].
func UpdateLevels(goals []Goal, id generic.GoalID, current, target SkillSet) ([]Goal, error) {
	i := indexOf(goals, id)
	if i < 0 {
		return nil, generic.ErrGoalNotFound
	}
	out := make([]Goal, len(goals))
	copy(out, goals)
	out[i].Current = current.Clamp()
	out[i].Target = target.Clamp()
	return out, nil
}

// AllocationTotal sums the shares of a goal list.
func AllocationTotal(goals []Goal) int {
	total := 0
	for _, g := range goals {
		total += g.AllocationPct
	}
	return total
}

func equalize(goals []Goal) []Goal {
	for i, pct := range generic.EqualShares(len(goals)) {
		goals[i].AllocationPct = pct
	}
	return goals
}

func indexOf(goals []Goal, id generic.GoalID) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
