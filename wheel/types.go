/*
Package wheel plans spin purchases for the Wheel of Fortune event.

PURPOSE:
  A player wants N spins. Spins come from several sources with different
  gem prices and caps. The planner fills the demand cheapest-first and
  reports what the plan costs and how many heads it should yield.

SOURCE ORDER (fixed, cheapest first):
  1. Free spins          - lifetime cap, no cost
  2. Bundles             - opted-in real-money packs, no gem cost, refund bonus gems
  3. Discount single     - capped, per-spin gem price below regular
  4. Discount pack       - capped, whole packs only
  5. Regular             - uncapped remainder

KEY CONCEPTS:
  - Config: the tariff (caps, prices, bundles, average heads per spin)
  - Plan: line items per source plus totals and expected heads

SEE ALSO:
  - plan.go: PlanSpins
  - generic/tiers.go: The ordered tier algorithm
  - factory/catalog.go: Default tariff
*/
package wheel

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// SOURCE KINDS
// =============================================================================

type SourceKind string

const (
	SourceFree           SourceKind = "free"
	SourceBundle         SourceKind = "bundle"
	SourceDiscountSingle SourceKind = "discount_single"
	SourceDiscountPack   SourceKind = "discount_pack"
	SourceRegular        SourceKind = "regular"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Source is one gem-priced purchase tier. Cap is in spins; nil = uncapped.
type Source struct {
	Kind        SourceKind
	Cap         *int
	PackSize    int // spins per unit; 1 for single-spin sources
	GemsPerUnit int
}

// Bundle is a real-money pack that grants spins and refunds gems.
type Bundle struct {
	ID         string
	Name       string
	PriceLabel string
	Spins      int
	BonusGems  int
}

// Config is the full wheel tariff.
type Config struct {
	FreeSpins       int
	DiscountSingle  Source
	DiscountPack    Source
	Regular         Source
	Bundles         []Bundle
	AvgHeadsPerSpin decimal.Decimal
	EventDays       int
}

// Bundle looks up a bundle by id.
func (c Config) Bundle(id string) (Bundle, bool) {
	for _, b := range c.Bundles {
		if b.ID == id {
			return b, true
		}
	}
	return Bundle{}, false
}

// =============================================================================
// PLAN
// =============================================================================

// Line is what one source contributed to a plan.
type Line struct {
	Kind     SourceKind
	BundleID string // set for bundle lines
	Name     string
	Spins    int
	Units    int // packs for the pack source, spins otherwise
	Gems     int
}

// Plan is the result of planning N spins.
type Plan struct {
	TargetSpins   int
	Lines         []Line
	TotalSpins    int
	TotalGems     int
	BonusGems     int
	ExpectedHeads decimal.Decimal
}

// Spins returns the spins contributed by one source kind (all bundles for SourceBundle).
func (p Plan) Spins(kind SourceKind) int {
	n := 0
	for _, l := range p.Lines {
		if l.Kind == kind {
			n += l.Spins
		}
	}
	return n
}

// Gems returns the gems spent on one source kind.
func (p Plan) Gems(kind SourceKind) int {
	n := 0
	for _, l := range p.Lines {
		if l.Kind == kind {
			n += l.Gems
		}
	}
	return n
}

// GemsPerSpin is the average gem price across all planned spins, rounded.
func (p Plan) GemsPerSpin() int {
	if p.TotalSpins == 0 {
		return 0
	}
	return int(decimal.NewFromInt(int64(p.TotalGems)).
		Div(decimal.NewFromInt(int64(p.TotalSpins))).
		Round(0).IntPart())
}

// GemsPerHead is the gem price of one expected head, rounded; 0 when no heads.
func (p Plan) GemsPerHead() int {
	if !p.ExpectedHeads.IsPositive() {
		return 0
	}
	return int(decimal.NewFromInt(int64(p.TotalGems)).Div(p.ExpectedHeads).Round(0).IntPart())
}
