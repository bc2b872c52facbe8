package commander

import "math"

// =============================================================================
// COST TABLE - Heads per level step, by rarity and skill slot
// =============================================================================

// CostTable maps a rarity to one cost row per skill slot.
// row[i] is the cost to go from level i+1 to level i+2.
// A rarity with fewer rows than slots reuses its last row.
type CostTable map[Rarity][][]int

// Row returns the per-level costs for a rarity and slot, or nil if unknown.
func (t CostTable) Row(rarity Rarity, slot int) []int {
	rows := t[rarity]
	if len(rows) == 0 {
		return nil
	}
	if slot >= len(rows) {
		return rows[len(rows)-1]
	}
	return rows[slot]
}

// CostToReach returns the heads spent taking one slot from level 1 to lvl.
func (t CostTable) CostToReach(rarity Rarity, slot, lvl int) int {
	row := t.Row(rarity, slot)
	sum := 0
	for i := 0; i < lvl-1 && i < len(row); i++ {
		sum += row[i]
	}
	return sum
}

// =============================================================================
// UPGRADE COST
// =============================================================================

// UpgradeCost is the heads picture of one goal.
type UpgradeCost struct {
	Invested int
	Needed   int
	Total    int
}

// Progress is the invested share of the total, in whole percent.
func (c UpgradeCost) Progress() int {
	if c.Total <= 0 {
		return 0
	}
	return int(math.Round(float64(c.Invested) / float64(c.Total) * 100))
}

// HeadsNeeded computes invested, needed and total heads for one goal.
//
// Levels must already be clamped to [1,5]. A slot whose target is below its
// current level contributes nothing to Needed; it never subtracts.
func HeadsNeeded(table CostTable, rarity Rarity, current, target SkillSet) UpgradeCost {
	var c UpgradeCost
	for slot := 0; slot < SkillSlots; slot++ {
		have := table.CostToReach(rarity, slot, current[slot])
		want := table.CostToReach(rarity, slot, target[slot])
		c.Invested += have
		c.Total += want
		if want > have {
			c.Needed += want - have
		}
	}
	return c
}

// Cost is HeadsNeeded for the goal's own rarity and vectors.
func (g Goal) Cost(table CostTable) UpgradeCost {
	return HeadsNeeded(table, g.Rarity, g.Current, g.Target)
}

// TotalNeeded sums Needed across goals.
func TotalNeeded(table CostTable, goals []Goal) int {
	total := 0
	for _, g := range goals {
		total += g.Cost(table).Needed
	}
	return total
}
