/*
allocation.go - Percentage share rebalancing

PURPOSE:
  Keeps a set of percentage shares summing to exactly 100 while one share
  is edited, or while consumers are added and removed.

EDIT (Rebalance):
  The edited share takes the new value v. Every other share is scaled by
  the same ratio into the remaining 100 - v:

    new = round(remaining * old / otherTotal)

  otherTotal is the sum of the other shares before the edit, treated as 1
  when zero. Rounding can leave the sum at 99 or 101; the difference is
  added to the first share (in slice order) that is not the edited one.
  A negative difference never takes a share below 0: what the first
  share cannot give is taken from the next one.

  A lone share has nothing to absorb the rest and stays at 100.

MEMBERSHIP CHANGE (EqualShares):
  Adding or removing a consumer resets everyone to floor(100/n) and the
  last one absorbs the remainder.

ORDERING:
  Both functions preserve slice order. Drift correction depends on it, so
  callers must keep a stable order (insertion order).

SEE ALSO:
  - commander/goals.go: Goal-level wrappers
*/
package generic

import "math"

// Rebalance sets shares[id] to v and scales the others proportionally.
// If id is not present, an unchanged copy is returned.
func Rebalance(shares []Share, id string, v int) []Share {
	out := make([]Share, len(shares))
	copy(out, shares)

	found := false
	otherTotal := 0
	for _, s := range shares {
		if s.ID == id {
			found = true
			continue
		}
		otherTotal += s.Pct
	}
	if !found {
		return out
	}
	if len(out) == 1 {
		out[0].Pct = 100
		return out
	}
	if otherTotal == 0 {
		otherTotal = 1
	}

	remaining := 100 - v
	for i := range out {
		if out[i].ID == id {
			out[i].Pct = v
			continue
		}
		ratio := float64(out[i].Pct) / float64(otherTotal)
		scaled := int(math.Round(float64(remaining) * ratio))
		if scaled < 0 {
			scaled = 0
		}
		out[i].Pct = scaled
	}

	// Fix rounding drift, first other share first
	drift := 100 - SumShares(out)
	for i := range out {
		if drift == 0 {
			break
		}
		if out[i].ID == id {
			continue
		}
		adj := drift
		if out[i].Pct+adj < 0 {
			adj = -out[i].Pct
		}
		out[i].Pct += adj
		drift -= adj
	}
	return out
}

// EqualShares returns n shares of floor(100/n); the last absorbs the remainder.
func EqualShares(n int) []int {
	if n <= 0 {
		return nil
	}
	each := 100 / n
	pcts := make([]int, n)
	for i := range pcts {
		pcts[i] = each
	}
	pcts[n-1] = 100 - each*(n-1)
	return pcts
}
