package wheel

import (
	"github.com/shopspring/decimal"

	"github.com/warp/heads-planner/generic"
)

// PlanSpins allocates target spins across sources in fixed order and
// estimates the heads they yield. bundles holds the opted-in bundle ids.
//
// Total spins always equal the target because the regular source is
// uncapped. A zero or negative target yields an all-zero plan.
func PlanSpins(cfg Config, target int, bundles map[string]bool) Plan {
	if target < 0 {
		target = 0
	}
	plan := Plan{TargetSpins: target, ExpectedHeads: decimal.Zero}
	if target == 0 {
		return plan
	}

	tiers, lines := buildTiers(cfg, bundles)
	takes, _ := generic.AcquireInOrder(target, tiers)

	for i, take := range takes {
		line := lines[i]
		line.Spins = take.Taken
		line.Units = take.Units
		line.Gems = take.Cost
		if line.Spins == 0 {
			continue
		}
		if line.Kind == SourceBundle {
			if b, ok := cfg.Bundle(line.BundleID); ok {
				plan.BonusGems += b.BonusGems
			}
		}
		plan.Lines = append(plan.Lines, line)
		plan.TotalSpins += line.Spins
		plan.TotalGems += line.Gems
	}

	plan.ExpectedHeads = ExpectedHeads(cfg, plan.TotalSpins)
	return plan
}

// ExpectedHeads converts a spin count into expected heads. Not rounded.
func ExpectedHeads(cfg Config, spins int) decimal.Decimal {
	if spins <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(spins)).Mul(cfg.AvgHeadsPerSpin)
}

// buildTiers lays the tariff out in consumption order, with a parallel
// slice of line templates.
func buildTiers(cfg Config, bundles map[string]bool) ([]generic.Tier, []Line) {
	var (
		tiers []generic.Tier
		lines []Line
	)

	tiers = append(tiers, generic.Tier{Name: string(SourceFree), Cap: generic.IntPtr(cfg.FreeSpins)})
	lines = append(lines, Line{Kind: SourceFree, Name: "Free spins"})

	for _, b := range cfg.Bundles {
		if !bundles[b.ID] {
			continue
		}
		tiers = append(tiers, generic.Tier{Name: b.ID, Cap: generic.IntPtr(b.Spins)})
		lines = append(lines, Line{Kind: SourceBundle, BundleID: b.ID, Name: b.Name})
	}

	tiers = append(tiers, sourceTier(cfg.DiscountSingle))
	lines = append(lines, Line{Kind: SourceDiscountSingle, Name: "Discounted single"})

	tiers = append(tiers, sourceTier(cfg.DiscountPack))
	lines = append(lines, Line{Kind: SourceDiscountPack, Name: "Discounted pack"})

	regular := sourceTier(cfg.Regular)
	regular.Cap = nil
	tiers = append(tiers, regular)
	lines = append(lines, Line{Kind: SourceRegular, Name: "Regular"})

	return tiers, lines
}

func sourceTier(s Source) generic.Tier {
	return generic.Tier{
		Name:     string(s.Kind),
		Cap:      s.Cap,
		UnitSize: s.PackSize,
		UnitCost: s.GemsPerUnit,
	}
}
