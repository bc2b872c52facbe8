/*
Package generic provides the core planning and projection engine.

PURPOSE:
  This package contains domain-agnostic types and algorithms for planning
  a scarce resource. Whether the resource is commander heads, spins or
  gems, the same primitives handle quantities, day arithmetic, ordered
  tier acquisition, share rebalancing and cumulative projection.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A quantity with a unit (e.g., 12 heads, 860 gems)
  - Identifiers: Type-safe profile and goal IDs
  - Share: One goal's percentage of pooled income

DESIGN PRINCIPLES:
  1. Purity: Engine functions take snapshots and return fresh values
  2. Precision: Uses decimal.Decimal for fractional yields
  3. Type Safety: Strong typing for IDs prevents mixing profile/goal IDs
  4. No hidden state: Every result is re-derivable from its inputs

USAGE:
  vip := generic.NewAmountFromInt(20, generic.UnitHeads)
  total := vip.Add(generic.NewAmountFromInt(10, generic.UnitHeads))

SEE ALSO:
  - tiers.go: Ordered capped tier acquisition
  - allocation.go: Share rebalancing
  - projection.go: Cumulative day-indexed projection
*/
package generic

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Quantity with unit
// =============================================================================

type Amount struct {
	Value decimal.Decimal
	Unit  Unit
}

type Unit string

const UnitHeads Unit = "heads"

func NewAmountFromInt(value int, unit Unit) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value)), Unit: unit}
}

func ZeroAmount(unit Unit) Amount {
	return Amount{Value: decimal.Zero, Unit: unit}
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Add(b Amount) Amount    { return Amount{Value: a.Value.Add(b.Value), Unit: a.Unit} }
func (a Amount) IsZero() bool           { return a.Value.IsZero() }
func (a Amount) LessThan(b Amount) bool { return a.Value.LessThan(b.Value) }
func (a Amount) Equal(b Amount) bool    { return a.Value.Equal(b.Value) }

// Int returns the whole part of the amount, truncated toward zero.
func (a Amount) Int() int { return int(a.Value.IntPart()) }

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ProfileID string
type GoalID string

// =============================================================================
// SHARE - One consumer's percentage of pooled income
// =============================================================================

// Share is the allocation of pooled income to one goal, in whole percent.
// A set of shares sums to 100 whenever it is non-empty.
type Share struct {
	ID  string
	Pct int
}

// SumShares returns the total percentage across shares.
func SumShares(shares []Share) int {
	total := 0
	for _, s := range shares {
		total += s.Pct
	}
	return total
}
