/*
Package events resolves calendar occurrences into head yields.

PURPOSE:
  The event calendar lists dated occurrences of recurring categories. Some
  categories pay heads depending on how the player did; the wheel category
  pays through planned spins instead. This package classifies each
  occurrence against "today" and works out what it is worth.

CATEGORY TABLE:
  Each category is a data entry, not a branch in code:

    Ark of Osiris        outcome  default 10  {win: 10, loss: 5, skip: 0}
    Champions of Olympia outcome  default  2  {complete: 2, skip: 0}
    More Than Gems       outcome  default 10  {complete: 10, skip: 0}
    Esmeralda Wheel      outcome  default  5  {complete: 5, skip: 0}
    Silk Road            outcome  default  5  {complete: 5, skip: 0}
    Wheel of Fortune     spins    (yield comes from wheel plans)

  Adding a category is a catalog change (factory/default_catalog.yaml).

SEE ALSO:
  - resolve.go: State derivation and yield resolution
  - factory/catalog.go: Loads the table
*/
package events

import (
	"sort"

	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// OUTCOMES
// =============================================================================

// Outcome is a logged or assumed result tag.
type Outcome string

const (
	OutcomeDefault  Outcome = "default"
	OutcomeWin      Outcome = "win"
	OutcomeLoss     Outcome = "loss"
	OutcomeComplete Outcome = "complete"
	OutcomeSkip     Outcome = "skip"
)

// =============================================================================
// CATEGORY
// =============================================================================

type CategoryKind string

const (
	KindOutcome CategoryKind = "outcome" // yield from the outcome table
	KindSpins   CategoryKind = "spins"   // yield from planned spins
)

// Category is one entry of the yield table.
type Category struct {
	Name     string
	Kind     CategoryKind
	Default  int
	Outcomes map[Outcome]int
}

// Yield returns the heads for an outcome. The default tag (or an empty tag)
// maps to the category default; tags outside the table are worth 0.
func (c Category) Yield(o Outcome) int {
	if o == "" || o == OutcomeDefault {
		return c.Default
	}
	return c.Outcomes[o]
}

// Allowed lists the tags a player may log, default first, then sorted.
func (c Category) Allowed() []Outcome {
	tags := make([]Outcome, 0, len(c.Outcomes))
	for o := range c.Outcomes {
		tags = append(tags, o)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return append([]Outcome{OutcomeDefault}, tags...)
}

// Catalog is the category table keyed by name.
type Catalog map[string]Category

// Lookup returns the category entry for a calendar category label.
func (c Catalog) Lookup(name string) (Category, bool) {
	cat, ok := c[name]
	return cat, ok
}

// ValidateOutcome checks a tag against a category before it is logged.
func ValidateOutcome(catalog Catalog, category string, outcome Outcome) error {
	cat, ok := catalog.Lookup(category)
	if !ok || cat.Kind != KindOutcome {
		return generic.ErrUnknownCategory
	}
	allowed := cat.Allowed()
	for _, a := range allowed {
		if a == outcome {
			return nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return &generic.InvalidOutcomeError{Category: category, Outcome: string(outcome), Allowed: names}
}
