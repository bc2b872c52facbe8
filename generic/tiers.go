/*
tiers.go - Ordered capped tier acquisition

PURPOSE:
  Allocates a demand (e.g., 12 spins) across purchase tiers consumed in a
  fixed priority order. Callers order tiers cheapest first; the algorithm
  never reorders them because each tier's demand depends on what earlier
  tiers already covered.

RULES:
  - Each tier takes min(remaining, cap). A nil cap means uncapped.
  - Tiers with UnitSize > 1 only take whole units: the take is floored to
    a multiple of UnitSize. Partial units are never bought.
  - Cost is UnitCost per unit; a unit is UnitSize of demand (1 if unset).

EXAMPLE:
  takes, left := AcquireInOrder(12, []Tier{
      {Name: "free", Cap: IntPtr(3)},
      {Name: "single", Cap: IntPtr(1), UnitCost: 100},
      {Name: "pack", UnitSize: 5, UnitCost: 400},
  })
  // free 3, single 1 (100), pack 5 (400); left = 3

SEE ALSO:
  - wheel/plan.go: Spin planner built on this
*/
package generic

// Tier is one purchase source in an ordered acquisition.
type Tier struct {
	Name     string
	Cap      *int // demand units; nil = uncapped
	UnitSize int  // whole-unit multiple; 0 or 1 = any amount
	UnitCost int  // cost per unit
}

// TierTake is what one tier contributed to the acquisition.
type TierTake struct {
	Tier  string
	Taken int // demand covered
	Units int // units bought (packs for multi-unit tiers)
	Cost  int
}

// IntPtr is a helper for optional caps.
func IntPtr(n int) *int { return &n }

// AcquireInOrder consumes tiers strictly in slice order and returns one
// take per tier (zero takes included) plus the unmet remainder.
func AcquireInOrder(target int, tiers []Tier) ([]TierTake, int) {
	remaining := target
	if remaining < 0 {
		remaining = 0
	}

	takes := make([]TierTake, 0, len(tiers))
	for _, t := range tiers {
		take := TierTake{Tier: t.Name}

		capacity := remaining
		if t.Cap != nil && *t.Cap < capacity {
			capacity = *t.Cap
		}
		if capacity < 0 {
			capacity = 0
		}

		size := t.UnitSize
		if size <= 1 {
			take.Taken = capacity
			take.Units = capacity
		} else {
			take.Units = capacity / size
			take.Taken = take.Units * size
		}
		take.Cost = take.Units * t.UnitCost

		remaining -= take.Taken
		takes = append(takes, take)
	}
	return takes, remaining
}
