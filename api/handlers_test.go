/*
handlers_test.go - HTTP tests for the planner API

Tests for:
- Profile and goal lifecycle (equal split, rebalance, removal)
- Calendar events and outcome logging (400 on tags outside the category)
- Forecast endpoints pinned with ?today=
- Stateless calculators and scenario loading
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/heads-planner/factory"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/generic/store"
	"github.com/warp/heads-planner/store/sqlite"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

const testToday = "2025-03-10"

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	catalog, err := factory.DefaultCatalog()
	require.NoError(t, err)

	h := NewHandler(db, catalog)
	h.Now = func() generic.TimePoint { return generic.MustParseDate(testToday) }
	return h
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(newTestHandler(t))
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), rec.Body.String())
	return out
}

func createProfile(t *testing.T, srv http.Handler) ProfileDTO {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/profiles", CreateProfileRequest{Name: "Main", Kingdom: "1234"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[ProfileDTO](t, rec)
}

func addGoal(t *testing.T, srv http.Handler, profileID, name string) ProfileDTO {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/profiles/"+profileID+"/goals", AddGoalRequest{Name: name})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[ProfileDTO](t, rec)
}

func allocations(goals []GoalDTO) []int {
	out := make([]int, len(goals))
	for i, g := range goals {
		out[i] = g.AllocationPct
	}
	return out
}

// =============================================================================
// PROFILES AND GOALS
// =============================================================================

func TestCreateProfile_Defaults(t *testing.T) {
	srv := newTestServer(t)

	p := createProfile(t, srv)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Main", p.Name)
	assert.Equal(t, 10, p.VIPLevel)
	assert.Equal(t, 30, p.DaysUntilGoal)
	assert.Empty(t, p.WheelBundles)
}

func TestGetProfile_Unknown(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/profiles/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/profiles/ghost/overview", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/profiles/ghost/goals", AddGoalRequest{Name: "Lohar"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)

	vip := 14
	rec := do(t, srv, http.MethodPut, "/api/profiles/"+p.ID, UpdateProfileRequest{
		VIPLevel:     &vip,
		WheelBundles: []string{"wheel-value", "wheel-starter"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[ProfileDTO](t, rec)
	assert.Equal(t, 14, got.VIPLevel)
	assert.Equal(t, "Main", got.Name)
	assert.Equal(t, []string{"wheel-starter", "wheel-value"}, got.WheelBundles)

	bad := 18
	rec = do(t, srv, http.MethodPut, "/api/profiles/"+p.ID, UpdateProfileRequest{VIPLevel: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/profiles/"+p.ID, UpdateProfileRequest{WheelBundles: []string{"nope"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateProfile_HorizonIsBounded(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)

	// GIVEN: a horizon one day past the limit
	tooFar := forecast.MaxDaysUntilGoal + 1
	rec := do(t, srv, http.MethodPut, "/api/profiles/"+p.ID, UpdateProfileRequest{DaysUntilGoal: &tooFar})

	// THEN: rejected and the stored horizon is unchanged
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	got := decode[ProfileDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID, nil))
	assert.Equal(t, forecast.DefaultDaysUntilGoal, got.DaysUntilGoal)

	// WHEN: the horizon sits exactly on the limit
	limit := forecast.MaxDaysUntilGoal
	rec = do(t, srv, http.MethodPut, "/api/profiles/"+p.ID, UpdateProfileRequest{DaysUntilGoal: &limit})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, limit, decode[ProfileDTO](t, rec).DaysUntilGoal)

	// THEN: the projection covers every day up to it
	proj := decode[ProjectionDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/projection?today="+testToday, nil))
	assert.Len(t, proj.Points, limit+1)
}

func TestGoals_RebalanceLifecycle(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)

	// GIVEN: three goals added one by one
	addGoal(t, srv, p.ID, "Lohar")
	addGoal(t, srv, p.ID, "Boudica")
	got := addGoal(t, srv, p.ID, "Sun Tzu")

	// THEN: equal split with the remainder on the last goal
	require.Len(t, got.Goals, 3)
	assert.Equal(t, []int{33, 33, 34}, allocations(got.Goals))
	assert.Equal(t, 100, got.Goals[0].Cost.Needed)

	// WHEN: the first goal is set to 70
	rec := do(t, srv, http.MethodPut,
		"/api/profiles/"+p.ID+"/goals/"+got.Goals[0].ID+"/allocation", SetAllocationRequest{Pct: 70})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[ProfileDTO](t, rec)

	// THEN: the others shrink in proportion and the total stays 100
	assert.Equal(t, 70, got.Goals[0].AllocationPct)
	assert.Equal(t, 100, got.Goals[0].AllocationPct+got.Goals[1].AllocationPct+got.Goals[2].AllocationPct)

	// WHEN: the first goal is removed
	rec = do(t, srv, http.MethodDelete, "/api/profiles/"+p.ID+"/goals/"+got.Goals[0].ID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got = decode[ProfileDTO](t, rec)

	// THEN: the rest split equally
	assert.Equal(t, []int{50, 50}, allocations(got.Goals))
	assert.Equal(t, "Boudica", got.Goals[0].Name)
}

func TestGoals_Validation(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/profiles/"+p.ID+"/goals", AddGoalRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/profiles/"+p.ID+"/goals", AddGoalRequest{Name: "X", Rarity: "mythic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodDelete, "/api/profiles/"+p.ID+"/goals/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateGoal_ClampsLevels(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)
	g := addGoal(t, srv, p.ID, "Lohar").Goals[0]

	rec := do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/goals/"+g.ID, UpdateGoalRequest{
		Current: []int{5, 5, 0, 1},
		Target:  []int{5, 5, 9, 1},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decode[ProfileDTO](t, rec).Goals[0]

	assert.Equal(t, []int{5, 5, 1, 1}, got.Current)
	assert.Equal(t, []int{5, 5, 5, 1}, got.Target)
	assert.Equal(t, 100, got.Cost.Needed)
}

// =============================================================================
// EVENTS AND OUTCOMES
// =============================================================================

func TestCreateEvent_Validation(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Raffle", Category: "Raffle", StartDate: "2025-03-12", EndDate: "2025-03-13",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Ark", Category: "Ark of Osiris", StartDate: "2025-03-13", EndDate: "2025-03-12",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Ark", Category: "Ark of Osiris", StartDate: "2025-03-12", EndDate: "2025-03-13",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	ev := decode[EventDTO](t, rec)

	list := decode[[]EventDTO](t, do(t, srv, http.MethodGet, "/api/events", nil))
	assert.Len(t, list, 1)

	rec = do(t, srv, http.MethodDelete, "/api/events/"+ev.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, srv, http.MethodDelete, "/api/events/"+ev.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOutcomes_ActiveOccurrenceNeedsInput(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)
	addGoal(t, srv, p.ID, "Lohar")

	// GIVEN: an Ark of Osiris running today with nothing logged
	ark := CreateEventRequest{Title: "Ark", Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11"}
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/events", ark).Code)

	occs := decode[[]OccurrenceDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/occurrences?today="+testToday, nil))
	require.Len(t, occs, 1)
	assert.Equal(t, "active", occs[0].State)
	assert.True(t, occs[0].NeedsInput)
	assert.Equal(t, 0, occs[0].Yield)

	// WHEN: a tag outside the category is logged
	rec := do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/outcomes", SetOutcomeRequest{
		Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11", Outcome: "complete",
	})

	// THEN: 400 and nothing changes
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// WHEN: a win is logged
	rec = do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/outcomes", SetOutcomeRequest{
		Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11", Outcome: "win",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// THEN: the occurrence yields its win value
	occs = decode[[]OccurrenceDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/occurrences?today="+testToday, nil))
	assert.False(t, occs[0].NeedsInput)
	assert.Equal(t, "win", occs[0].Logged)
	assert.Equal(t, 10, occs[0].Yield)

	// WHEN: the outcome is cleared
	rec = do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/outcomes", SetOutcomeRequest{
		Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	occs = decode[[]OccurrenceDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/occurrences?today="+testToday, nil))
	assert.True(t, occs[0].NeedsInput)
}

// =============================================================================
// FORECAST
// =============================================================================

func TestForecast_OverviewAndProjection(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)
	addGoal(t, srv, p.ID, "Lohar")

	// GIVEN: one upcoming Ark and one wheel with 12 planned spins
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Ark", Category: "Ark of Osiris", StartDate: "2025-03-12", EndDate: "2025-03-13",
	}).Code)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Wheel", Category: "Wheel of Fortune", StartDate: "2025-03-14", EndDate: "2025-03-16",
	}).Code)
	rec := do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/spins", SetSpinsRequest{
		StartDate: "2025-03-14", EndDate: "2025-03-16", Spins: 12,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// WHEN: reading the overview at VIP 10 (1/day) over 30 days
	ov := decode[OverviewDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/overview?today="+testToday, nil))

	// THEN: 30 VIP + 10 Ark + floor(12*0.8) wheel
	assert.Equal(t, testToday, ov.Today)
	assert.Equal(t, 30, ov.VIPTotal)
	assert.Equal(t, 10, ov.EventHeads)
	assert.Equal(t, 12, ov.WheelSpinsPlanned)
	assert.Equal(t, 9, ov.WheelHeads)
	assert.Equal(t, 49, ov.TotalExpected)
	assert.Equal(t, 100, ov.TotalNeeded)
	assert.Equal(t, 51, ov.Missing)
	assert.Equal(t, 1, ov.WheelsLeft)
	require.Len(t, ov.Goals, 1)
	assert.Equal(t, 49, ov.Goals[0].CreditedHeads)

	proj := decode[ProjectionDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/projection?today="+testToday, nil))
	require.Len(t, proj.Points, 31)
	assert.Equal(t, "2025-03-12", proj.Points[2].Date)
	assert.Equal(t, 10, proj.Points[2].Events)
	assert.Equal(t, 9, proj.Points[4].Spins)
	assert.Equal(t, 31+10+9, proj.FinalTotal)

	wheels := decode[[]WheelDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/wheels?today="+testToday, nil))
	require.Len(t, wheels, 1)
	assert.Equal(t, "wof_2025-03-14_2025-03-16", wheels[0].Key)
	assert.Equal(t, 12, wheels[0].PlannedSpins)
}

func TestForecast_LogsFromInjectedStore(t *testing.T) {
	// GIVEN: a handler keeping outcome and spin logs in memory
	h := newTestHandler(t)
	logs := store.NewMemory()
	h.Logs = logs
	srv := NewRouter(h)

	p := createProfile(t, srv)
	addGoal(t, srv, p.ID, "Lohar")
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Ark", Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11",
	}).Code)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/events", CreateEventRequest{
		Title: "Wheel", Category: "Wheel of Fortune", StartDate: "2025-03-14", EndDate: "2025-03-16",
	}).Code)

	// WHEN: a win and 12 spins are logged through the API
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/outcomes", SetOutcomeRequest{
		Category: "Ark of Osiris", StartDate: "2025-03-09", EndDate: "2025-03-11", Outcome: "win",
	}).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPut, "/api/profiles/"+p.ID+"/spins", SetSpinsRequest{
		StartDate: "2025-03-14", EndDate: "2025-03-16", Spins: 12,
	}).Code)

	// THEN: both land in the memory store, not in sqlite
	ctx := context.Background()
	outcomes, err := logs.GetOutcomes(ctx, generic.ProfileID(p.ID))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Ark of Osiris_2025-03-09_2025-03-11": "win"}, outcomes)
	spins, err := logs.GetSpins(ctx, generic.ProfileID(p.ID))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"wof_2025-03-14_2025-03-16": 12}, spins)

	dbSpins, err := h.Store.GetSpins(ctx, generic.ProfileID(p.ID))
	require.NoError(t, err)
	assert.Empty(t, dbSpins)

	// THEN: the overview reads them back
	ov := decode[OverviewDTO](t, do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/overview?today="+testToday, nil))
	assert.Equal(t, 0, ov.NeedsInput)
	assert.Equal(t, 10, ov.EventHeads)
	assert.Equal(t, 12, ov.WheelSpinsPlanned)

	// WHEN: the database is reset
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/scenarios/reset", nil).Code)

	// THEN: the memory logs go with it
	spins, err = logs.GetSpins(ctx, generic.ProfileID(p.ID))
	require.NoError(t, err)
	assert.Empty(t, spins)
}

func TestForecast_BadToday(t *testing.T) {
	srv := newTestServer(t)
	p := createProfile(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/profiles/"+p.ID+"/projection?today=soon", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// CALCULATORS
// =============================================================================

func TestCalcHeads(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/calc/heads", CalcHeadsRequest{
		Current: []int{5, 1, 1, 1}, Target: []int{5, 5, 1, 1},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	cost := decode[CostDTO](t, rec)
	assert.Equal(t, 100, cost.Needed)
	assert.Equal(t, 100, cost.Invested)
	assert.Equal(t, 200, cost.Total)

	rec = do(t, srv, http.MethodPost, "/api/calc/heads", CalcHeadsRequest{Rarity: "mythic"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcWheel(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/calc/wheel", CalcWheelRequest{TargetSpins: 8, Bundles: []string{"wheel-starter"}})
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decode[PlanDTO](t, rec)
	assert.Equal(t, 8, plan.TotalSpins)
	assert.Equal(t, 0, plan.TotalGems)
	assert.Equal(t, 300, plan.BonusGems)
	assert.Equal(t, "6.4", plan.ExpectedHeads)

	rec = do(t, srv, http.MethodPost, "/api/calc/wheel", CalcWheelRequest{TargetSpins: 8, Bundles: []string{"nope"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestLoadScenario_MidSeason(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/scenarios/load?today="+testToday, LoadScenarioRequest{ScenarioID: "mid-season"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cur := decode[ScenarioDTO](t, do(t, srv, http.MethodGet, "/api/scenarios/current", nil))
	assert.Equal(t, "mid-season", cur.ID)

	p := decode[ProfileDTO](t, do(t, srv, http.MethodGet, "/api/profiles/profile-mid", nil))
	assert.Equal(t, []int{70, 30}, allocations(p.Goals))

	ov := decode[OverviewDTO](t, do(t, srv, http.MethodGet, "/api/profiles/profile-mid/overview?today="+testToday, nil))
	assert.Equal(t, 1, ov.NeedsInput)
	assert.Equal(t, 2, ov.WheelsLeft)
	assert.Equal(t, 24, ov.WheelSpinsPlanned)
}

func TestLoadScenario_ConcurrentRequests(t *testing.T) {
	srv := newTestServer(t)
	ids := []string{"fresh-account", "mid-season", "big-spender"}

	// WHEN: loads, reads and resets race each other
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		id := ids[i%len(ids)]
		wg.Add(2)
		go func() {
			defer wg.Done()
			do(t, srv, http.MethodPost, "/api/scenarios/load?today="+testToday, LoadScenarioRequest{ScenarioID: id})
		}()
		go func() {
			defer wg.Done()
			do(t, srv, http.MethodGet, "/api/scenarios/current", nil)
		}()
	}
	wg.Wait()

	// THEN: a final load is reported as current
	rec := do(t, srv, http.MethodPost, "/api/scenarios/load?today="+testToday, LoadScenarioRequest{ScenarioID: "big-spender"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cur := decode[ScenarioDTO](t, do(t, srv, http.MethodGet, "/api/scenarios/current", nil))
	assert.Equal(t, "big-spender", cur.ID)
}

func TestLoadScenario_Unknown(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetDatabase(t *testing.T) {
	srv := newTestServer(t)
	createProfile(t, srv)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/scenarios/reset", nil).Code)

	list := decode[[]ProfileDTO](t, do(t, srv, http.MethodGet, "/api/profiles", nil))
	assert.Empty(t, list)
}
