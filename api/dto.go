/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine packages from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Calculators:
    CalcHeadsRequest, CostDTO, CalcWheelRequest, PlanDTO

  Profiles and goals:
    ProfileDTO, CreateProfileRequest, UpdateProfileRequest
    GoalDTO, AddGoalRequest, UpdateGoalRequest, SetAllocationRequest

  Calendar:
    EventDTO, CreateEventRequest, OccurrenceDTO, SetOutcomeRequest
    WheelDTO, SetSpinsRequest

  Forecast:
    ProjectionDTO, OverviewDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

DATES:
  All dates are ISO "YYYY-MM-DD" strings.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/catalog.go: CatalogYAML is served as-is by GET /api/catalog
*/
package api

import (
	"time"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
	"github.com/warp/heads-planner/store/sqlite"
	"github.com/warp/heads-planner/wheel"
)

// =============================================================================
// CALCULATORS
// =============================================================================

// CalcHeadsRequest prices an ad-hoc skill upgrade.
type CalcHeadsRequest struct {
	Rarity  string `json:"rarity"`
	Current []int  `json:"current"`
	Target  []int  `json:"target"`
}

// CostDTO is the heads cost of a skill upgrade.
type CostDTO struct {
	Invested    int `json:"invested"`
	Needed      int `json:"needed"`
	Total       int `json:"total"`
	ProgressPct int `json:"progress_pct"`
}

// CalcWheelRequest plans an ad-hoc number of spins.
type CalcWheelRequest struct {
	TargetSpins int      `json:"target_spins"`
	Bundles     []string `json:"bundles"`
}

// PlanLineDTO is one source's contribution to a spin plan.
type PlanLineDTO struct {
	Source   string `json:"source"`
	BundleID string `json:"bundle_id,omitempty"`
	Name     string `json:"name"`
	Spins    int    `json:"spins"`
	Units    int    `json:"units"`
	Gems     int    `json:"gems"`
}

// PlanDTO is a spin acquisition plan.
type PlanDTO struct {
	TargetSpins   int           `json:"target_spins"`
	TotalSpins    int           `json:"total_spins"`
	TotalGems     int           `json:"total_gems"`
	BonusGems     int           `json:"bonus_gems"`
	ExpectedHeads string        `json:"expected_heads"`
	GemsPerSpin   int           `json:"gems_per_spin"`
	GemsPerHead   int           `json:"gems_per_head"`
	Lines         []PlanLineDTO `json:"lines"`
}

// =============================================================================
// PROFILES AND GOALS
// =============================================================================

// ProfileDTO represents a profile in API responses.
type ProfileDTO struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Kingdom          string    `json:"kingdom"`
	VIPLevel         int       `json:"vip_level"`
	CurrentGems      int       `json:"current_gems"`
	DailyGemIncome   int       `json:"daily_gem_income"`
	DaysUntilGoal    int       `json:"days_until_goal"`
	WheelTargetSpins int       `json:"wheel_target_spins"`
	WheelBundles     []string  `json:"wheel_bundles"`
	Goals            []GoalDTO `json:"goals,omitempty"`
	CreatedAt        string    `json:"created_at,omitempty"`
	UpdatedAt        string    `json:"updated_at,omitempty"`
}

// CreateProfileRequest is the request body for creating a profile.
type CreateProfileRequest struct {
	Name    string `json:"name"`
	Kingdom string `json:"kingdom"`
}

// UpdateProfileRequest changes profile settings. Nil fields are left as is.
type UpdateProfileRequest struct {
	Name             *string  `json:"name"`
	Kingdom          *string  `json:"kingdom"`
	VIPLevel         *int     `json:"vip_level"`
	CurrentGems      *int     `json:"current_gems"`
	DailyGemIncome   *int     `json:"daily_gem_income"`
	DaysUntilGoal    *int     `json:"days_until_goal"`
	WheelTargetSpins *int     `json:"wheel_target_spins"`
	WheelBundles     []string `json:"wheel_bundles"`
}

// GoalDTO represents a commander goal with its cost.
type GoalDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Rarity        string  `json:"rarity"`
	Current       []int   `json:"current"`
	Target        []int   `json:"target"`
	AllocationPct int     `json:"allocation_pct"`
	Cost          CostDTO `json:"cost"`
}

// AddGoalRequest adds a commander goal. Omitted levels use the defaults.
type AddGoalRequest struct {
	Name    string `json:"name"`
	Rarity  string `json:"rarity"`
	Current []int  `json:"current"`
	Target  []int  `json:"target"`
}

// UpdateGoalRequest edits a goal. Nil/empty fields are left as is.
type UpdateGoalRequest struct {
	Name    *string `json:"name"`
	Rarity  *string `json:"rarity"`
	Current []int   `json:"current"`
	Target  []int   `json:"target"`
}

// SetAllocationRequest sets one goal's share of income.
type SetAllocationRequest struct {
	Pct int `json:"pct"`
}

// =============================================================================
// CALENDAR
// =============================================================================

// EventDTO is a calendar event.
type EventDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CreateEventRequest is the request body for adding a calendar event.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// OccurrenceDTO is a resolved outcome-kind occurrence.
type OccurrenceDTO struct {
	Key          string   `json:"key"`
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	State        string   `json:"state"`
	DefaultYield int      `json:"default_yield"`
	Logged       string   `json:"logged,omitempty"`
	Yield        int      `json:"yield"`
	NeedsInput   bool     `json:"needs_input"`
	DaysUntil    int      `json:"days_until"`
	Allowed      []string `json:"allowed"`
}

// SetOutcomeRequest logs the outcome of one occurrence.
// An empty outcome clears the log entry.
type SetOutcomeRequest struct {
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Outcome   string `json:"outcome"`
}

// WheelDTO is a wheel occurrence with planned spins.
type WheelDTO struct {
	Key           string `json:"key"`
	Title         string `json:"title"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	State         string `json:"state"`
	DaysUntil     int    `json:"days_until"`
	PlannedSpins  int    `json:"planned_spins"`
	ExpectedHeads int    `json:"expected_heads"`
}

// SetSpinsRequest plans spins for one wheel occurrence.
type SetSpinsRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Spins     int    `json:"spins"`
}

// =============================================================================
// FORECAST
// =============================================================================

// ProjectionPointDTO is one day of the cumulative series.
type ProjectionPointDTO struct {
	Day       int    `json:"day"`
	Date      string `json:"date"`
	Recurring int    `json:"recurring"`
	Events    int    `json:"events"`
	Spins     int    `json:"spins"`
	Total     int    `json:"total"`
}

// ProjectionDTO is the head income projection of a profile.
type ProjectionDTO struct {
	Today      string               `json:"today"`
	Points     []ProjectionPointDTO `json:"points"`
	FinalTotal int                  `json:"final_total"`
}

// GoalSummaryDTO is one goal's share of the projected income.
type GoalSummaryDTO struct {
	GoalID        string `json:"goal_id"`
	Name          string `json:"name"`
	AllocationPct int    `json:"allocation_pct"`
	Needed        int    `json:"needed"`
	CreditedHeads int    `json:"credited_heads"`
	CoveragePct   int    `json:"coverage_pct"`
}

// OverviewDTO is the overall picture of a profile.
type OverviewDTO struct {
	Today             string           `json:"today"`
	VIPPerDay         int              `json:"vip_per_day"`
	VIPTotal          int              `json:"vip_total"`
	EventHeads        int              `json:"event_heads"`
	WheelSpinsPlanned int              `json:"wheel_spins_planned"`
	WheelHeads        int              `json:"wheel_heads"`
	WheelsLeft        int              `json:"wheels_left"`
	TotalExpected     int              `json:"total_expected"`
	TotalNeeded       int              `json:"total_needed"`
	Missing           int              `json:"missing"`
	CompletionPct     int              `json:"completion_pct"`
	NeedsInput        int              `json:"needs_input"`
	EventsUpcoming    int              `json:"events_upcoming"`
	Goals             []GoalSummaryDTO `json:"goals"`
	WheelPlan         PlanDTO          `json:"wheel_plan"`
	GemsAvailable     int              `json:"gems_available"`
	GemShortfall      int              `json:"gem_shortfall"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a demo data set.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a demo data set.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toCostDTO(c commander.UpgradeCost) CostDTO {
	return CostDTO{Invested: c.Invested, Needed: c.Needed, Total: c.Total, ProgressPct: c.Progress()}
}

func toPlanDTO(p wheel.Plan) PlanDTO {
	lines := make([]PlanLineDTO, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = PlanLineDTO{
			Source:   string(l.Kind),
			BundleID: l.BundleID,
			Name:     l.Name,
			Spins:    l.Spins,
			Units:    l.Units,
			Gems:     l.Gems,
		}
	}
	return PlanDTO{
		TargetSpins:   p.TargetSpins,
		TotalSpins:    p.TotalSpins,
		TotalGems:     p.TotalGems,
		BonusGems:     p.BonusGems,
		ExpectedHeads: p.ExpectedHeads.String(),
		GemsPerSpin:   p.GemsPerSpin(),
		GemsPerHead:   p.GemsPerHead(),
		Lines:         lines,
	}
}

func toGoalDTO(g commander.Goal, costs commander.CostTable) GoalDTO {
	return GoalDTO{
		ID:            string(g.ID),
		Name:          g.Name,
		Rarity:        string(g.Rarity),
		Current:       g.Current[:],
		Target:        g.Target[:],
		AllocationPct: g.AllocationPct,
		Cost:          toCostDTO(g.Cost(costs)),
	}
}

func toProfileDTO(rec sqlite.ProfileRecord, goals []commander.Goal, costs commander.CostTable) ProfileDTO {
	dto := ProfileDTO{
		ID:               string(rec.ID),
		Name:             rec.Name,
		Kingdom:          rec.Kingdom,
		VIPLevel:         rec.VIPLevel,
		CurrentGems:      rec.CurrentGems,
		DailyGemIncome:   rec.DailyGemIncome,
		DaysUntilGoal:    rec.DaysUntilGoal,
		WheelTargetSpins: rec.WheelTargetSpins,
		WheelBundles:     sortedKeys(rec.WheelBundles),
		CreatedAt:        rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        rec.UpdatedAt.Format(time.RFC3339),
	}
	for _, g := range goals {
		dto.Goals = append(dto.Goals, toGoalDTO(g, costs))
	}
	return dto
}

func toEventDTO(e sqlite.EventRecord) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		StartDate:   e.Start.String(),
		EndDate:     e.End.String(),
	}
}

func toOccurrenceDTO(r events.ResolvedOccurrence, catalog events.Catalog) OccurrenceDTO {
	dto := OccurrenceDTO{
		Key:          r.Key,
		Title:        r.Occurrence.Title,
		Category:     r.Occurrence.Category,
		StartDate:    r.Occurrence.Start.String(),
		EndDate:      r.Occurrence.End.String(),
		State:        string(r.State),
		DefaultYield: r.DefaultYield,
		Logged:       string(r.Logged),
		Yield:        r.Yield,
		NeedsInput:   r.NeedsInput,
		DaysUntil:    r.DaysUntil,
	}
	if cat, ok := catalog.Lookup(r.Occurrence.Category); ok {
		for _, o := range cat.Allowed() {
			dto.Allowed = append(dto.Allowed, string(o))
		}
	}
	return dto
}

func toWheelDTO(w forecast.WheelRow) WheelDTO {
	return WheelDTO{
		Key:           w.Key,
		Title:         w.Occurrence.Title,
		StartDate:     w.Occurrence.Start.String(),
		EndDate:       w.Occurrence.End.String(),
		State:         string(w.State),
		DaysUntil:     w.DaysUntil,
		PlannedSpins:  w.PlannedSpins,
		ExpectedHeads: w.ExpectedHeads,
	}
}

func toProjectionDTO(today generic.TimePoint, p forecast.Projection) ProjectionDTO {
	points := make([]ProjectionPointDTO, len(p.Points))
	for i, pt := range p.Points {
		points[i] = ProjectionPointDTO{
			Day:       pt.Day,
			Date:      today.AddDays(pt.Day).String(),
			Recurring: pt.Recurring.Int(),
			Events:    pt.Events.Int(),
			Spins:     pt.Spins.Int(),
			Total:     pt.Total.Int(),
		}
	}
	return ProjectionDTO{Today: today.String(), Points: points, FinalTotal: forecast.FinalTotal(p)}
}

func toOverviewDTO(today generic.TimePoint, s forecast.Summary) OverviewDTO {
	goals := make([]GoalSummaryDTO, len(s.Goals))
	for i, g := range s.Goals {
		goals[i] = GoalSummaryDTO{
			GoalID:        string(g.Goal.ID),
			Name:          g.Goal.Name,
			AllocationPct: g.Goal.AllocationPct,
			Needed:        g.Cost.Needed,
			CreditedHeads: g.CreditedHeads,
			CoveragePct:   g.CoveragePct,
		}
	}
	return OverviewDTO{
		Today:             today.String(),
		VIPPerDay:         s.VIPPerDay,
		VIPTotal:          s.VIPTotal,
		EventHeads:        s.EventHeads,
		WheelSpinsPlanned: s.WheelSpinsPlanned,
		WheelHeads:        s.WheelHeads,
		WheelsLeft:        s.WheelsLeft,
		TotalExpected:     s.TotalExpected,
		TotalNeeded:       s.TotalNeeded,
		Missing:           s.Missing,
		CompletionPct:     s.CompletionPct,
		NeedsInput:        s.NeedsInput,
		EventsUpcoming:    s.EventsUpcoming,
		Goals:             goals,
		WheelPlan:         toPlanDTO(s.WheelPlan),
		GemsAvailable:     s.GemsAvailable,
		GemShortfall:      s.GemShortfall,
	}
}
