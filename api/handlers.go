/*
handlers.go - HTTP API handlers for the heads planner

PURPOSE:
  Exposes the planner engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine packages. Handlers load
  a profile snapshot from the store, run pure engine functions over it and
  write back only records (profiles, goals, events, outcome and spin logs).
  Derived numbers are never stored.

ENDPOINTS:
  Catalog and calculators:
    GET    /api/catalog                          Static tables
    POST   /api/calc/heads                       Heads for an ad-hoc upgrade
    POST   /api/calc/wheel                       Spin plan for an ad-hoc target

  Profiles:
    GET    /api/profiles                         List profiles
    POST   /api/profiles                         Create (VIP 10, 30 days)
    GET    /api/profiles/{id}                    Profile with goals
    PUT    /api/profiles/{id}                    Update settings
    DELETE /api/profiles/{id}                    Delete with goals and logs

  Goals:
    POST   /api/profiles/{id}/goals              Add goal (equal split)
    PUT    /api/profiles/{id}/goals/{goalID}     Edit levels/name/rarity
    PUT    /api/profiles/{id}/goals/{goalID}/allocation  Rebalance shares
    DELETE /api/profiles/{id}/goals/{goalID}     Remove goal (equal split)

  Calendar:
    GET    /api/events                           List calendar events
    POST   /api/events                           Add calendar event
    DELETE /api/events/{id}                      Delete calendar event

  Forecast (all accept ?today=YYYY-MM-DD):
    GET    /api/profiles/{id}/occurrences        Resolved occurrences
    PUT    /api/profiles/{id}/outcomes           Log an outcome
    GET    /api/profiles/{id}/wheels             Wheel occurrences + spins
    PUT    /api/profiles/{id}/spins              Plan spins for a wheel
    GET    /api/profiles/{id}/wheel-plan         Spin plan for the profile
    GET    /api/profiles/{id}/projection         Cumulative head series
    GET    /api/profiles/{id}/overview           Totals and deficits

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Logs: Outcome and spin logs (Store by default, any generic.LogStore)
  - Catalog: Static tables loaded from YAML
  - Now: Clock used when ?today= is absent

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Profile, goal or event not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo data loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/factory"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/store/sqlite"
	"github.com/warp/heads-planner/wheel"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Logs    generic.LogStore // outcome and spin logs; the sqlite store unless replaced
	Catalog *factory.Catalog
	Now     func() generic.TimePoint

	// Track currently loaded scenario
	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler with the given store and catalog.
func NewHandler(store *sqlite.Store, catalog *factory.Catalog) *Handler {
	return &Handler{
		Store:   store,
		Logs:    store,
		Catalog: catalog,
		Now:     generic.Today,
	}
}

func (h *Handler) tables() forecast.Tables {
	return h.Catalog.Tables()
}

// today reads ?today=YYYY-MM-DD, falling back to the handler clock.
func (h *Handler) today(r *http.Request) (generic.TimePoint, error) {
	if s := r.URL.Query().Get("today"); s != "" {
		return generic.ParseDate(s)
	}
	return h.Now(), nil
}

// loadInput assembles the engine snapshot for one profile.
func (h *Handler) loadInput(ctx context.Context, id generic.ProfileID, today generic.TimePoint) (forecast.Input, error) {
	rec, err := h.Store.GetProfile(ctx, id)
	if err != nil {
		return forecast.Input{}, err
	}
	goals, err := h.Store.GetGoals(ctx, id)
	if err != nil {
		return forecast.Input{}, err
	}
	occs, err := h.Store.Occurrences(ctx)
	if err != nil {
		return forecast.Input{}, err
	}
	outcomes, err := h.Logs.GetOutcomes(ctx, id)
	if err != nil {
		return forecast.Input{}, err
	}
	spins, err := h.Logs.GetSpins(ctx, id)
	if err != nil {
		return forecast.Input{}, err
	}

	return forecast.Input{
		Today:       today,
		Profile:     rec.Profile,
		Goals:       goals,
		Occurrences: occs,
		Outcomes:    events.OutcomeLogFromStrings(outcomes),
		Spins:       forecast.SpinLog(spins),
		Tables:      h.tables(),
	}, nil
}

// forecastRequest parses the profile id and ?today= and loads the snapshot.
func (h *Handler) forecastRequest(w http.ResponseWriter, r *http.Request) (forecast.Input, bool) {
	today, err := h.today(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid today parameter", err)
		return forecast.Input{}, false
	}
	in, err := h.loadInput(r.Context(), profileID(r), today)
	if err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return forecast.Input{}, false
	}
	return in, true
}

// =============================================================================
// CATALOG AND CALCULATORS
// =============================================================================

// GetCatalog returns the static tables.
// GET /api/catalog
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Doc)
}

// CalcHeads prices an ad-hoc skill upgrade.
// POST /api/calc/heads
func (h *Handler) CalcHeads(w http.ResponseWriter, r *http.Request) {
	var req CalcHeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	rarity, err := parseRarity(req.Rarity)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rarity", err)
		return
	}

	cost := commander.HeadsNeeded(h.tables().Costs, rarity,
		commander.SkillSetFromSlice(req.Current), commander.SkillSetFromSlice(req.Target))
	writeJSON(w, http.StatusOK, toCostDTO(cost))
}

// CalcWheel plans an ad-hoc number of spins.
// POST /api/calc/wheel
func (h *Handler) CalcWheel(w http.ResponseWriter, r *http.Request) {
	var req CalcWheelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	bundles, err := h.bundleSet(req.Bundles)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown bundle", err)
		return
	}

	plan := wheel.PlanSpins(h.tables().Wheel, req.TargetSpins, bundles)
	writeJSON(w, http.StatusOK, toPlanDTO(plan))
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// ListProfiles returns all profiles.
// GET /api/profiles
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	recs, err := h.Store.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list profiles", err)
		return
	}

	dtos := make([]ProfileDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toProfileDTO(rec, nil, h.tables().Costs)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProfile creates a profile with default settings.
// POST /api/profiles
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	p := forecast.DefaultProfile(generic.ProfileID(uuid.NewString()), strings.TrimSpace(req.Name))
	p.Kingdom = req.Kingdom
	if err := h.Store.SaveProfile(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create profile", err)
		return
	}
	h.writeProfile(w, r, p.ID, http.StatusCreated)
}

// GetProfile returns a profile with its goals.
// GET /api/profiles/{id}
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	h.writeProfile(w, r, profileID(r), http.StatusOK)
}

// UpdateProfile changes profile settings.
// PUT /api/profiles/{id}
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := profileID(r)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Store.GetProfile(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}
	p := rec.Profile

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Kingdom != nil {
		p.Kingdom = *req.Kingdom
	}
	if req.VIPLevel != nil {
		if *req.VIPLevel < 0 || *req.VIPLevel > forecast.MaxVIPLevel {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("vip_level must be between 0 and %d", forecast.MaxVIPLevel), nil)
			return
		}
		p.VIPLevel = *req.VIPLevel
	}
	if req.CurrentGems != nil {
		p.CurrentGems = max(0, *req.CurrentGems)
	}
	if req.DailyGemIncome != nil {
		p.DailyGemIncome = max(0, *req.DailyGemIncome)
	}
	if req.DaysUntilGoal != nil {
		if *req.DaysUntilGoal > forecast.MaxDaysUntilGoal {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("days_until_goal must be at most %d", forecast.MaxDaysUntilGoal), nil)
			return
		}
		p.DaysUntilGoal = max(0, *req.DaysUntilGoal)
	}
	if req.WheelTargetSpins != nil {
		p.WheelTargetSpins = max(0, *req.WheelTargetSpins)
	}
	if req.WheelBundles != nil {
		bundles, err := h.bundleSet(req.WheelBundles)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown bundle", err)
			return
		}
		p.WheelBundles = bundles
	}

	if err := h.Store.SaveProfile(ctx, p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}
	h.writeProfile(w, r, id, http.StatusOK)
}

// DeleteProfile removes a profile with its goals and logs.
// DELETE /api/profiles/{id}
func (h *Handler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteProfile(r.Context(), profileID(r)); err != nil {
		writeStoreError(w, "Failed to delete profile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) writeProfile(w http.ResponseWriter, r *http.Request, id generic.ProfileID, status int) {
	ctx := r.Context()
	rec, err := h.Store.GetProfile(ctx, id)
	if err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}
	goals, err := h.Store.GetGoals(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load goals", err)
		return
	}
	dto := toProfileDTO(*rec, goals, h.tables().Costs)
	if dto.Goals == nil {
		dto.Goals = []GoalDTO{}
	}
	writeJSON(w, status, dto)
}

// =============================================================================
// GOAL HANDLERS
// =============================================================================

// AddGoal appends a commander goal and splits shares equally.
// POST /api/profiles/{id}/goals
func (h *Handler) AddGoal(w http.ResponseWriter, r *http.Request) {
	var req AddGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Goal name is required", nil)
		return
	}

	g := commander.NewGoal(name)
	if req.Rarity != "" {
		rarity, err := parseRarity(req.Rarity)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid rarity", err)
			return
		}
		g.Rarity = rarity
	}
	if len(req.Current) > 0 {
		g.Current = commander.SkillSetFromSlice(req.Current)
	}
	if len(req.Target) > 0 {
		g.Target = commander.SkillSetFromSlice(req.Target)
	}

	h.mutateGoals(w, r, http.StatusCreated, func(goals []commander.Goal) ([]commander.Goal, error) {
		return commander.AddGoal(goals, g), nil
	})
}

// UpdateGoal edits a goal's levels, name or rarity. Levels are clamped to [1,5].
// PUT /api/profiles/{id}/goals/{goalID}
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	var rarity commander.Rarity
	if req.Rarity != nil {
		var err error
		if rarity, err = parseRarity(*req.Rarity); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid rarity", err)
			return
		}
	}
	goalID := generic.GoalID(chi.URLParam(r, "goalID"))

	h.mutateGoals(w, r, http.StatusOK, func(goals []commander.Goal) ([]commander.Goal, error) {
		var cur commander.Goal
		found := false
		for _, g := range goals {
			if g.ID == goalID {
				cur, found = g, true
				break
			}
		}
		if !found {
			return nil, generic.ErrGoalNotFound
		}

		current, target := cur.Current, cur.Target
		if len(req.Current) > 0 {
			current = commander.SkillSetFromSlice(req.Current)
		}
		if len(req.Target) > 0 {
			target = commander.SkillSetFromSlice(req.Target)
		}
		out, err := commander.UpdateLevels(goals, goalID, current, target)
		if err != nil {
			return nil, err
		}
		for i := range out {
			if out[i].ID != goalID {
				continue
			}
			if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
				out[i].Name = strings.TrimSpace(*req.Name)
			}
			if req.Rarity != nil {
				out[i].Rarity = rarity
			}
		}
		return out, nil
	})
}

// SetGoalAllocation sets one goal's share; the others scale to keep the total at 100.
// PUT /api/profiles/{id}/goals/{goalID}/allocation
func (h *Handler) SetGoalAllocation(w http.ResponseWriter, r *http.Request) {
	var req SetAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	goalID := generic.GoalID(chi.URLParam(r, "goalID"))

	h.mutateGoals(w, r, http.StatusOK, func(goals []commander.Goal) ([]commander.Goal, error) {
		return commander.SetAllocation(goals, goalID, req.Pct)
	})
}

// RemoveGoal drops a goal and splits shares equally among the rest.
// DELETE /api/profiles/{id}/goals/{goalID}
func (h *Handler) RemoveGoal(w http.ResponseWriter, r *http.Request) {
	goalID := generic.GoalID(chi.URLParam(r, "goalID"))

	h.mutateGoals(w, r, http.StatusOK, func(goals []commander.Goal) ([]commander.Goal, error) {
		return commander.RemoveGoal(goals, goalID)
	})
}

// mutateGoals loads a profile's goals, applies fn and saves the whole list.
func (h *Handler) mutateGoals(w http.ResponseWriter, r *http.Request, status int,
	fn func([]commander.Goal) ([]commander.Goal, error)) {
	ctx := r.Context()
	id := profileID(r)

	if _, err := h.Store.GetProfile(ctx, id); err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}
	goals, err := h.Store.GetGoals(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load goals", err)
		return
	}

	updated, err := fn(goals)
	if err != nil {
		writeStoreError(w, "Failed to update goals", err)
		return
	}
	if err := h.Store.SaveGoals(ctx, id, updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save goals", err)
		return
	}
	h.writeProfile(w, r, id, status)
}

// =============================================================================
// CALENDAR HANDLERS
// =============================================================================

// ListEvents returns all calendar events.
// GET /api/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.Store.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	dtos := make([]EventDTO, len(list))
	for i, e := range list {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEvent adds a calendar event.
// POST /api/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}
	if _, ok := h.tables().Categories.Lookup(req.Category); !ok {
		writeError(w, http.StatusBadRequest, "Unknown category", generic.ErrUnknownCategory)
		return
	}
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dates", err)
		return
	}

	rec := sqlite.EventRecord{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Start:       period.Start,
		End:         period.End,
	}
	if err := h.Store.SaveEvent(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save event", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(rec))
}

// DeleteEvent removes a calendar event.
// DELETE /api/events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, "Failed to delete event", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// OUTCOME AND SPIN LOGS
// =============================================================================

// ListOccurrences returns resolved outcome-kind occurrences in the horizon.
// GET /api/profiles/{id}/occurrences?today=
func (h *Handler) ListOccurrences(w http.ResponseWriter, r *http.Request) {
	in, ok := h.forecastRequest(w, r)
	if !ok {
		return
	}
	rows := forecast.ResolveOccurrences(in)
	dtos := make([]OccurrenceDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toOccurrenceDTO(row, in.Tables.Categories)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetOutcome logs (or clears) the outcome of one occurrence.
// PUT /api/profiles/{id}/outcomes
func (h *Handler) SetOutcome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := profileID(r)

	var req SetOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dates", err)
		return
	}
	if _, err := h.Store.GetProfile(ctx, id); err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}

	occ := events.Occurrence{Category: req.Category, Start: period.Start, End: period.End}
	if req.Outcome == "" {
		if err := h.Logs.ClearOutcome(ctx, id, occ.Key()); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to clear outcome", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"key": occ.Key(), "outcome": ""})
		return
	}

	outcome := events.Outcome(req.Outcome)
	if err := events.ValidateOutcome(h.tables().Categories, req.Category, outcome); err != nil {
		writeStoreError(w, "Invalid outcome", err)
		return
	}
	if err := h.Logs.SetOutcome(ctx, id, occ.Key(), string(outcome)); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save outcome", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": occ.Key(), "outcome": string(outcome)})
}

// ListWheels returns wheel occurrences in the horizon with planned spins.
// GET /api/profiles/{id}/wheels?today=
func (h *Handler) ListWheels(w http.ResponseWriter, r *http.Request) {
	in, ok := h.forecastRequest(w, r)
	if !ok {
		return
	}
	rows := forecast.Wheels(in)
	dtos := make([]WheelDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toWheelDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetSpins plans spins for one wheel occurrence. Negative counts become 0.
// PUT /api/profiles/{id}/spins
func (h *Handler) SetSpins(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := profileID(r)

	var req SetSpinsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	period, err := parsePeriod(req.StartDate, req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid dates", err)
		return
	}
	if _, err := h.Store.GetProfile(ctx, id); err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}

	key := events.Occurrence{Start: period.Start, End: period.End}.WheelKey()
	spins := max(0, req.Spins)
	if err := h.Logs.SetSpins(ctx, id, key, spins); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save spins", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"key": key, "spins": spins})
}

// =============================================================================
// FORECAST HANDLERS
// =============================================================================

// GetWheelPlan plans the profile's wheel target with its opted-in bundles.
// GET /api/profiles/{id}/wheel-plan
func (h *Handler) GetWheelPlan(w http.ResponseWriter, r *http.Request) {
	rec, err := h.Store.GetProfile(r.Context(), profileID(r))
	if err != nil {
		writeStoreError(w, "Failed to load profile", err)
		return
	}
	plan := wheel.PlanSpins(h.tables().Wheel, rec.WheelTargetSpins, rec.WheelBundles)
	writeJSON(w, http.StatusOK, toPlanDTO(plan))
}

// GetProjection returns the day-indexed cumulative head series.
// GET /api/profiles/{id}/projection?today=
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	in, ok := h.forecastRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toProjectionDTO(in.Today, forecast.Project(in)))
}

// GetOverview returns totals, deficits and per-goal credit.
// GET /api/profiles/{id}/overview?today=
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	in, ok := h.forecastRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toOverviewDTO(in.Today, forecast.Overview(in)))
}

// =============================================================================
// HELPERS
// =============================================================================

func profileID(r *http.Request) generic.ProfileID {
	return generic.ProfileID(chi.URLParam(r, "id"))
}

func parseRarity(s string) (commander.Rarity, error) {
	if s == "" {
		return commander.RarityLegendary, nil
	}
	rarity := commander.Rarity(strings.ToLower(s))
	if !rarity.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return rarity, nil
}

func parsePeriod(start, end string) (generic.Period, error) {
	s, err := generic.ParseDate(start)
	if err != nil {
		return generic.Period{}, fmt.Errorf("start_date: %w", err)
	}
	e, err := generic.ParseDate(end)
	if err != nil {
		return generic.Period{}, fmt.Errorf("end_date: %w", err)
	}
	p := generic.Period{Start: s, End: e}
	if err := p.Validate(); err != nil {
		return generic.Period{}, err
	}
	return p, nil
}

func (h *Handler) bundleSet(ids []string) (map[string]bool, error) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := h.tables().Wheel.Bundle(id); !ok {
			return nil, fmt.Errorf("bundle %q not in catalog", id)
		}
		set[id] = true
	}
	return set, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k, on := range set {
		if on {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps domain errors to 404 / 400 and everything else to 500.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case generic.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case generic.IsClientError(err), errors.Is(err, generic.ErrInvalidConfig):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
