/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates a profile, commander
	goals, a calendar relative to today and, where relevant, logged
	outcomes and planned spins.

AVAILABLE SCENARIOS:

	fresh-account: VIP 10, one legendary goal, a default calendar
	mid-season:    VIP 14, two goals at 70/30, an active Ark of Osiris
	               waiting for input, a logged win and planned wheel spins
	big-spender:   VIP 17, wheel target with bundles, gem shortfall

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create the profile
 3. Add goals through the rebalancer
 4. Create calendar events anchored on today
 5. Optionally log outcomes and plan spins

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "mid-season"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, today)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Engine-backed handlers the scenarios feed
  - factory/default_catalog.yaml: Category names used below
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "fresh-account",
		Name:        "Fresh Account",
		Description: "VIP 10, one legendary commander, default calendar",
	},
	{
		ID:          "mid-season",
		Name:        "Mid Season",
		Description: "Two goals at 70/30, active event waiting for input, planned wheel spins",
	},
	{
		ID:          "big-spender",
		Name:        "Big Spender",
		Description: "VIP 17 with wheel bundles and a large spin target",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	current := h.scenario()
	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: current, Name: current})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var loader func(context.Context, generic.TimePoint) error
	switch req.ScenarioID {
	case "fresh-account":
		loader = h.loadFreshAccountScenario
	case "mid-season":
		loader = h.loadMidSeasonScenario
	case "big-spender":
		loader = h.loadBigSpenderScenario
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	ctx := r.Context()
	if err := h.reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today parameter", err)
		return
	}
	if err := loader(ctx, today); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	h.setScenario(req.ScenarioID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario": req.ScenarioID})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) scenario() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.currentScenario
}

func (h *Handler) setScenario(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.currentScenario = id
}

// reset wipes the database and, when logs live elsewhere, the log store too.
func (h *Handler) reset(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	if r, ok := h.Logs.(interface{ Reset(context.Context) error }); ok && h.Logs != generic.LogStore(h.Store) {
		if err := r.Reset(ctx); err != nil {
			return err
		}
	}
	h.setScenario("")
	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func (h *Handler) loadFreshAccountScenario(ctx context.Context, today generic.TimePoint) error {
	p := forecast.DefaultProfile("profile-fresh", "Fresh Account")
	p.Kingdom = "1234"
	if err := h.Store.SaveProfile(ctx, p); err != nil {
		return err
	}

	goals := commander.AddGoal(nil, namedGoal("goal-fresh-1", "Lohar"))
	if err := h.Store.SaveGoals(ctx, p.ID, goals); err != nil {
		return err
	}

	return h.saveCalendar(ctx, "fresh", defaultCalendar(today))
}

func (h *Handler) loadMidSeasonScenario(ctx context.Context, today generic.TimePoint) error {
	p := forecast.DefaultProfile("profile-mid", "Mid Season")
	p.Kingdom = "2048"
	p.VIPLevel = 14
	p.CurrentGems = 4000
	p.DailyGemIncome = 150
	p.DaysUntilGoal = 21
	p.WheelTargetSpins = 20
	if err := h.Store.SaveProfile(ctx, p); err != nil {
		return err
	}

	goals := commander.AddGoal(nil, namedGoal("goal-mid-1", "Guan Yu"))
	goals = commander.AddGoal(goals, namedGoal("goal-mid-2", "Boudica"))
	goals[1].Rarity = commander.RarityEpic
	goals[1].Target = commander.SkillSet{5, 5, 5, 5}
	goals, err := commander.SetAllocation(goals, "goal-mid-1", 70)
	if err != nil {
		return err
	}
	if err := h.Store.SaveGoals(ctx, p.ID, goals); err != nil {
		return err
	}

	cal := defaultCalendar(today)
	// running now, no result logged yet
	cal = append(cal, events.Occurrence{
		Title: "Ark of Osiris", Category: "Ark of Osiris",
		Start: today.AddDays(-1), End: today.AddDays(1),
	})
	if err := h.saveCalendar(ctx, "mid", cal); err != nil {
		return err
	}

	// last week's Ark was a win
	won := events.Occurrence{Category: "Ark of Osiris", Start: today.AddDays(-8), End: today.AddDays(-6)}
	if err := h.Logs.SetOutcome(ctx, p.ID, won.Key(), string(events.OutcomeWin)); err != nil {
		return err
	}
	for _, occ := range cal {
		if occ.Category == wheelCategory {
			if err := h.Logs.SetSpins(ctx, p.ID, occ.WheelKey(), 12); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *Handler) loadBigSpenderScenario(ctx context.Context, today generic.TimePoint) error {
	p := forecast.DefaultProfile("profile-whale", "Big Spender")
	p.VIPLevel = forecast.MaxVIPLevel
	p.CurrentGems = 20000
	p.DailyGemIncome = 400
	p.DaysUntilGoal = 45
	p.WheelTargetSpins = 120
	p.WheelBundles = map[string]bool{"wheel-starter": true, "wheel-value": true}
	if err := h.Store.SaveProfile(ctx, p); err != nil {
		return err
	}

	var goals []commander.Goal
	for i, name := range []string{"Cao Cao", "Minamoto", "Mehmed II"} {
		g := namedGoal(generic.GoalID(fmt.Sprintf("goal-whale-%d", i+1)), name)
		g.Target = commander.SkillSet{5, 5, 5, 5}
		goals = commander.AddGoal(goals, g)
	}
	if err := h.Store.SaveGoals(ctx, p.ID, goals); err != nil {
		return err
	}

	cal := defaultCalendar(today)
	if err := h.saveCalendar(ctx, "whale", cal); err != nil {
		return err
	}
	for _, occ := range cal {
		if occ.Category == wheelCategory {
			if err := h.Logs.SetSpins(ctx, p.ID, occ.WheelKey(), 60); err != nil {
				return err
			}
		}
	}
	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

const wheelCategory = "Wheel of Fortune"

func namedGoal(id generic.GoalID, name string) commander.Goal {
	g := commander.NewGoal(name)
	g.ID = id
	return g
}

// defaultCalendar is a month of the recurring event rotation starting today.
func defaultCalendar(today generic.TimePoint) []events.Occurrence {
	span := func(title, category string, from, days int) events.Occurrence {
		return events.Occurrence{
			Title:    title,
			Category: category,
			Start:    today.AddDays(from),
			End:      today.AddDays(from + days - 1),
		}
	}
	return []events.Occurrence{
		span("Ark of Osiris", "Ark of Osiris", 6, 3),
		span("Ark of Osiris", "Ark of Osiris", 20, 3),
		span("Champions of Olympia", "Champions of Olympia", 2, 7),
		span("More Than Gems", "More Than Gems", 10, 5),
		span("Esmeralda Wheel", "Esmeralda Wheel", 15, 3),
		span("Silk Road", "Silk Road", 24, 5),
		span("Wheel of Fortune", wheelCategory, 4, 3),
		span("Wheel of Fortune", wheelCategory, 18, 3),
	}
}

func (h *Handler) saveCalendar(ctx context.Context, prefix string, occs []events.Occurrence) error {
	for i, occ := range occs {
		rec := sqlite.EventRecord{
			ID:       fmt.Sprintf("event-%s-%02d", prefix, i+1),
			Title:    occ.Title,
			Category: occ.Category,
			Start:    occ.Start,
			End:      occ.End,
		}
		if err := h.Store.SaveEvent(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
