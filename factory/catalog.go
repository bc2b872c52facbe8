/*
Package factory provides YAML to Go catalog conversion.

PURPOSE:
  Converts the static planner tables (skill cost rows, VIP income, wheel
  tariff, event category yields) from YAML into the typed tables the
  engine packages consume. Tuning a price or adding an event category is a
  data change, not a code change.

WHY YAML?
  - Game balance changes between seasons; non-developers edit the file
  - Comments next to the numbers
  - The same document is served as JSON by GET /api/catalog

YAML SCHEMA:
  version: "2025.1"
  costs:
    legendary: [[10, 20, 30, 40]]
  vip_heads_per_day: [0, 0, ..., 5]
  wheel:
    free_spins: 3
    avg_heads_per_spin: "0.8"
    discount_single: {cap: 3, gems: 135}
    discount_pack:   {cap: 10, pack_size: 5, gems: 1200}
    regular:         {gems: 270}
    bundles: [{id: wheel-starter, spins: 5, bonus_gems: 300}]
  categories:
    - {name: Ark of Osiris, kind: outcome, default: 10, outcomes: {win: 10, loss: 5, skip: 0}}
    - {name: Wheel of Fortune, kind: spins}

LAYERING:
  LoadCatalog(path) decodes the file on top of the embedded defaults.
  Mapping keys (e.g. one rarity under costs) merge; lists (bundles,
  categories, vip_heads_per_day) replace the default list as a whole.

USAGE:
  cat, err := factory.LoadCatalog("./catalog.yaml")  // "" = defaults only
  tables := cat.Tables()
  plan := wheel.PlanSpins(tables.Wheel, 12, nil)

SEE ALSO:
  - default_catalog.yaml: Embedded defaults
  - forecast/types.go: Tables
*/
package factory

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/wheel"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

// =============================================================================
// YAML SCHEMA TYPES
// =============================================================================

// CatalogYAML is the document form of the static tables.
type CatalogYAML struct {
	Version        string             `yaml:"version" json:"version"`
	Costs          map[string][][]int `yaml:"costs" json:"costs"`
	VIPHeadsPerDay []int              `yaml:"vip_heads_per_day" json:"vip_heads_per_day"`
	Wheel          WheelYAML          `yaml:"wheel" json:"wheel"`
	Categories     []CategoryYAML     `yaml:"categories" json:"categories"`
}

// WheelYAML is the wheel tariff.
type WheelYAML struct {
	EventDays       int          `yaml:"event_days" json:"event_days"`
	FreeSpins       int          `yaml:"free_spins" json:"free_spins"`
	AvgHeadsPerSpin string       `yaml:"avg_heads_per_spin" json:"avg_heads_per_spin"`
	DiscountSingle  SourceYAML   `yaml:"discount_single" json:"discount_single"`
	DiscountPack    SourceYAML   `yaml:"discount_pack" json:"discount_pack"`
	Regular         SourceYAML   `yaml:"regular" json:"regular"`
	Bundles         []BundleYAML `yaml:"bundles" json:"bundles"`
}

// SourceYAML is one gem-priced source. Cap is in spins; omitted = uncapped.
type SourceYAML struct {
	Cap      *int `yaml:"cap,omitempty" json:"cap,omitempty"`
	PackSize int  `yaml:"pack_size,omitempty" json:"pack_size,omitempty"`
	Gems     int  `yaml:"gems" json:"gems"`
}

// BundleYAML is a real-money spin bundle.
type BundleYAML struct {
	ID         string `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	PriceLabel string `yaml:"price_label" json:"price_label"`
	Spins      int    `yaml:"spins" json:"spins"`
	BonusGems  int    `yaml:"bonus_gems" json:"bonus_gems"`
}

// CategoryYAML is one event category yield entry.
type CategoryYAML struct {
	Name     string         `yaml:"name" json:"name"`
	Kind     string         `yaml:"kind" json:"kind"`
	Default  int            `yaml:"default" json:"default"`
	Outcomes map[string]int `yaml:"outcomes,omitempty" json:"outcomes,omitempty"`
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is a validated document plus the typed tables built from it.
type Catalog struct {
	Doc    CatalogYAML
	tables forecast.Tables
}

// Tables returns the engine tables.
func (c *Catalog) Tables() forecast.Tables {
	return c.tables
}

// DefaultCatalog parses the embedded defaults.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(nil)
}

// LoadCatalog overlays the YAML file at path on the defaults.
// An empty path returns the defaults.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes overlay on top of the embedded defaults, validates
// the result and builds the tables.
func ParseCatalog(overlay []byte) (*Catalog, error) {
	var doc CatalogYAML
	if err := yaml.Unmarshal(defaultCatalogYAML, &doc); err != nil {
		return nil, fmt.Errorf("decode default catalog: %w", err)
	}
	if len(overlay) > 0 {
		if err := yaml.Unmarshal(overlay, &doc); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return &Catalog{Doc: doc, tables: build(doc)}, nil
}

// =============================================================================
// VALIDATION
// =============================================================================

var validOutcomes = map[events.Outcome]bool{
	events.OutcomeWin:      true,
	events.OutcomeLoss:     true,
	events.OutcomeComplete: true,
	events.OutcomeSkip:     true,
}

// Validate checks a catalog document. Errors are *generic.ConfigError.
func Validate(doc CatalogYAML) error {
	for rarity, rows := range doc.Costs {
		if !commander.Rarity(rarity).Valid() {
			return configErr("costs."+rarity, "unknown rarity")
		}
		if len(rows) == 0 {
			return configErr("costs."+rarity, "at least one row required")
		}
		for i, row := range rows {
			if len(row) < commander.MaxSkillLevel-1 {
				return configErr(fmt.Sprintf("costs.%s[%d]", rarity, i),
					fmt.Sprintf("need %d level costs, got %d", commander.MaxSkillLevel-1, len(row)))
			}
			for _, c := range row {
				if c < 0 {
					return configErr(fmt.Sprintf("costs.%s[%d]", rarity, i), "negative cost")
				}
			}
		}
	}

	for i, v := range doc.VIPHeadsPerDay {
		if v < 0 {
			return configErr(fmt.Sprintf("vip_heads_per_day[%d]", i), "negative rate")
		}
	}

	if err := validateWheel(doc.Wheel); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, c := range doc.Categories {
		field := fmt.Sprintf("categories[%d]", i)
		if c.Name == "" {
			return configErr(field, "name required")
		}
		if seen[c.Name] {
			return configErr(field, "duplicate category "+c.Name)
		}
		seen[c.Name] = true

		switch events.CategoryKind(c.Kind) {
		case events.KindOutcome:
			if c.Default < 0 {
				return configErr(field, "negative default")
			}
			for tag, y := range c.Outcomes {
				if !validOutcomes[events.Outcome(tag)] {
					return configErr(field, "unknown outcome "+tag)
				}
				if y < 0 {
					return configErr(field, "negative yield for "+tag)
				}
			}
		case events.KindSpins:
		default:
			return configErr(field, "unknown kind "+c.Kind)
		}
	}
	return nil
}

func validateWheel(w WheelYAML) error {
	if w.FreeSpins < 0 {
		return configErr("wheel.free_spins", "negative")
	}
	avg, err := decimal.NewFromString(w.AvgHeadsPerSpin)
	if err != nil || avg.IsNegative() {
		return configErr("wheel.avg_heads_per_spin", "must be a non-negative decimal")
	}
	for name, s := range map[string]SourceYAML{
		"discount_single": w.DiscountSingle,
		"discount_pack":   w.DiscountPack,
		"regular":         w.Regular,
	} {
		if s.Cap != nil && *s.Cap < 0 {
			return configErr("wheel."+name+".cap", "negative")
		}
		if s.Gems < 0 {
			return configErr("wheel."+name+".gems", "negative")
		}
	}
	if w.DiscountPack.PackSize < 1 {
		return configErr("wheel.discount_pack.pack_size", "must be at least 1")
	}
	ids := make(map[string]bool)
	for i, b := range w.Bundles {
		field := fmt.Sprintf("wheel.bundles[%d]", i)
		if b.ID == "" || ids[b.ID] {
			return configErr(field, "missing or duplicate id")
		}
		ids[b.ID] = true
		if b.Spins < 0 || b.BonusGems < 0 {
			return configErr(field, "negative spins or bonus")
		}
	}
	return nil
}

func configErr(field, msg string) error {
	return &generic.ConfigError{Field: field, Message: msg}
}

// =============================================================================
// BUILD
// =============================================================================

func build(doc CatalogYAML) forecast.Tables {
	costs := make(commander.CostTable, len(doc.Costs))
	for rarity, rows := range doc.Costs {
		copied := make([][]int, len(rows))
		for i, row := range rows {
			copied[i] = append([]int(nil), row...)
		}
		costs[commander.Rarity(rarity)] = copied
	}

	cats := make(events.Catalog, len(doc.Categories))
	for _, c := range doc.Categories {
		outcomes := make(map[events.Outcome]int, len(c.Outcomes))
		for tag, y := range c.Outcomes {
			outcomes[events.Outcome(tag)] = y
		}
		cats[c.Name] = events.Category{
			Name:     c.Name,
			Kind:     events.CategoryKind(c.Kind),
			Default:  c.Default,
			Outcomes: outcomes,
		}
	}

	return forecast.Tables{
		Costs:      costs,
		Wheel:      buildWheel(doc.Wheel),
		Categories: cats,
		VIPIncome:  append(forecast.IncomeTable(nil), doc.VIPHeadsPerDay...),
	}
}

func buildWheel(w WheelYAML) wheel.Config {
	bundles := make([]wheel.Bundle, len(w.Bundles))
	for i, b := range w.Bundles {
		bundles[i] = wheel.Bundle{
			ID:         b.ID,
			Name:       b.Name,
			PriceLabel: b.PriceLabel,
			Spins:      b.Spins,
			BonusGems:  b.BonusGems,
		}
	}
	return wheel.Config{
		FreeSpins: w.FreeSpins,
		EventDays: w.EventDays,
		DiscountSingle: wheel.Source{
			Kind:        wheel.SourceDiscountSingle,
			Cap:         w.DiscountSingle.Cap,
			PackSize:    1,
			GemsPerUnit: w.DiscountSingle.Gems,
		},
		DiscountPack: wheel.Source{
			Kind:        wheel.SourceDiscountPack,
			Cap:         w.DiscountPack.Cap,
			PackSize:    w.DiscountPack.PackSize,
			GemsPerUnit: w.DiscountPack.Gems,
		},
		Regular: wheel.Source{
			Kind:        wheel.SourceRegular,
			PackSize:    1,
			GemsPerUnit: w.Regular.Gems,
		},
		Bundles:         bundles,
		AvgHeadsPerSpin: generic.MustParseDecimal(w.AvgHeadsPerSpin),
	}
}
