/*
Package sqlite provides a SQLite-backed implementation of the storage interfaces.

PURPOSE:
  Persists everything the planner engine reads but never writes itself:
  profiles, commander goals, calendar events, the per-profile outcome log
  and the per-profile spin log. In production, the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  generic.OutcomeStore: Logged event outcomes per profile
  generic.SpinStore:    Planned wheel spins per profile

KEY TABLES:
  profiles:        Account settings (VIP level, gems, horizon, wheel target)
  goals:           Commander goals, ordered by position within a profile
  calendar_events: Shared event calendar (title, category, start/end dates)
  outcomes:        (profile, occurrence key) -> outcome tag
  spins:           (profile, wheel key) -> planned spins

GOAL ORDER:
  Allocation drift correction goes to the first other goal in insertion
  order, so goals carry an explicit position column and are always saved
  as a whole list.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. In production with PostgreSQL,
  database-level concurrency control handles this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/planner.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - generic/store.go: Interface definitions
  - generic/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/heads-planner/commander"
	"github.com/warp/heads-planner/events"
	"github.com/warp/heads-planner/forecast"
	"github.com/warp/heads-planner/generic"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ generic.LogStore = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kingdom TEXT NOT NULL DEFAULT '',
		vip_level INTEGER NOT NULL DEFAULT 0,
		current_gems INTEGER NOT NULL DEFAULT 0,
		daily_gem_income INTEGER NOT NULL DEFAULT 0,
		days_until_goal INTEGER NOT NULL DEFAULT 0,
		wheel_target_spins INTEGER NOT NULL DEFAULT 0,
		wheel_bundles_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		rarity TEXT NOT NULL,
		current_json TEXT NOT NULL,
		target_json TEXT NOT NULL,
		allocation_pct INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_goals_profile_position
		ON goals(profile_id, position);

	CREATE TABLE IF NOT EXISTS calendar_events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_calendar_events_start
		ON calendar_events(start_date);

	-- At most one outcome per occurrence key (upsert)
	CREATE TABLE IF NOT EXISTS outcomes (
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		occurrence_key TEXT NOT NULL,
		outcome TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (profile_id, occurrence_key)
	);

	CREATE TABLE IF NOT EXISTS spins (
		profile_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		wheel_key TEXT NOT NULL,
		spins INTEGER NOT NULL CHECK (spins >= 0),
		updated_at TEXT NOT NULL,
		PRIMARY KEY (profile_id, wheel_key)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILE STORE
// =============================================================================

// ProfileRecord is a stored profile.
type ProfileRecord struct {
	forecast.Profile
	CreatedAt time.Time
	UpdatedAt time.Time
}

const profileColumns = `id, name, kingdom, vip_level, current_gems, daily_gem_income,
	days_until_goal, wheel_target_spins, wheel_bundles_json, created_at, updated_at`

// SaveProfile inserts or updates a profile.
func (s *Store) SaveProfile(ctx context.Context, p forecast.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bundlesJSON, err := json.Marshal(bundleIDs(p.WheelBundles))
	if err != nil {
		return fmt.Errorf("failed to encode bundles: %w", err)
	}

	query := `
		INSERT INTO profiles (` + profileColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			kingdom = excluded.kingdom,
			vip_level = excluded.vip_level,
			current_gems = excluded.current_gems,
			daily_gem_income = excluded.daily_gem_income,
			days_until_goal = excluded.days_until_goal,
			wheel_target_spins = excluded.wheel_target_spins,
			wheel_bundles_json = excluded.wheel_bundles_json,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Kingdom, p.VIPLevel, p.CurrentGems, p.DailyGemIncome,
		p.DaysUntilGoal, p.WheelTargetSpins, string(bundlesJSON), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *Store) GetProfile(ctx context.Context, id generic.ProfileID) (*ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, "SELECT "+profileColumns+" FROM profiles WHERE id = ?", id)
	rec, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, generic.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &rec, nil
}

// ListProfiles returns all profiles ordered by name.
func (s *Store) ListProfiles(ctx context.Context) ([]ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+profileColumns+" FROM profiles ORDER BY name, created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []ProfileRecord
	for rows.Next() {
		rec, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, rec)
	}
	return profiles, rows.Err()
}

// DeleteProfile removes a profile with its goals, outcomes and spins.
func (s *Store) DeleteProfile(ctx context.Context, id generic.ProfileID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"goals", "outcomes", "spins"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE profile_id = ?", id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", id, generic.ErrProfileNotFound)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (ProfileRecord, error) {
	var rec ProfileRecord
	var id, bundlesJSON, createdAt, updatedAt string
	err := row.Scan(&id, &rec.Name, &rec.Kingdom, &rec.VIPLevel, &rec.CurrentGems,
		&rec.DailyGemIncome, &rec.DaysUntilGoal, &rec.WheelTargetSpins,
		&bundlesJSON, &createdAt, &updatedAt)
	if err != nil {
		return rec, err
	}
	rec.ID = generic.ProfileID(id)

	var ids []string
	if err := json.Unmarshal([]byte(bundlesJSON), &ids); err != nil {
		return rec, fmt.Errorf("failed to decode bundles: %w", err)
	}
	rec.WheelBundles = make(map[string]bool, len(ids))
	for _, b := range ids {
		rec.WheelBundles[b] = true
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return rec, nil
}

func bundleIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id, on := range set {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// =============================================================================
// GOAL STORE
// =============================================================================

// GetGoals returns a profile's goals in insertion order.
func (s *Store) GetGoals(ctx context.Context, profileID generic.ProfileID) ([]commander.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, rarity, current_json, target_json, allocation_pct
		FROM goals
		WHERE profile_id = ?
		ORDER BY position ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := []commander.Goal{}
	for rows.Next() {
		var g commander.Goal
		var id, rarity, currentJSON, targetJSON string
		if err := rows.Scan(&id, &g.Name, &rarity, &currentJSON, &targetJSON, &g.AllocationPct); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		g.ID = generic.GoalID(id)
		g.Rarity = commander.Rarity(rarity)
		if g.Current, err = decodeLevels(currentJSON); err != nil {
			return nil, err
		}
		if g.Target, err = decodeLevels(targetJSON); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// SaveGoals replaces a profile's goal list atomically. Every rebalance
// touches all shares, so goals are always written as a whole.
func (s *Store) SaveGoals(ctx context.Context, profileID generic.ProfileID, goals []commander.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM goals WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}

	for pos, g := range goals {
		currentJSON, _ := json.Marshal(g.Current)
		targetJSON, _ := json.Marshal(g.Target)
		_, err := tx.ExecContext(ctx, `
			INSERT INTO goals (id, profile_id, position, name, rarity, current_json, target_json, allocation_pct)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, g.ID, profileID, pos, g.Name, g.Rarity, string(currentJSON), string(targetJSON), g.AllocationPct)
		if err != nil {
			return fmt.Errorf("failed to save goal %s: %w", g.ID, err)
		}
	}

	return tx.Commit()
}

func decodeLevels(s string) (commander.SkillSet, error) {
	var levels []int
	if err := json.Unmarshal([]byte(s), &levels); err != nil {
		return commander.SkillSet{}, fmt.Errorf("failed to decode skill levels: %w", err)
	}
	return commander.SkillSetFromSlice(levels), nil
}

// =============================================================================
// CALENDAR EVENT STORE
// =============================================================================

// EventRecord is a calendar event as stored.
type EventRecord struct {
	ID          string
	Title       string
	Description string
	Category    string
	Start       generic.TimePoint
	End         generic.TimePoint
	CreatedAt   time.Time
}

// Occurrence is the engine view of the record.
func (e EventRecord) Occurrence() events.Occurrence {
	return events.Occurrence{Title: e.Title, Category: e.Category, Start: e.Start, End: e.End}
}

// SaveEvent inserts or updates a calendar event.
func (s *Store) SaveEvent(ctx context.Context, e EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO calendar_events (id, title, description, category, start_date, end_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			start_date = excluded.start_date,
			end_date = excluded.end_date
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description, e.Category,
		e.Start.String(), e.End.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

// ListEvents returns all calendar events ordered by start date.
func (s *Store) ListEvents(ctx context.Context) ([]EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, category, start_date, end_date, created_at
		FROM calendar_events
		ORDER BY start_date ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	list := []EventRecord{}
	for rows.Next() {
		var e EventRecord
		var start, end, createdAt string
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Category, &start, &end, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if e.Start, err = generic.ParseDate(start); err != nil {
			return nil, fmt.Errorf("event %s start: %w", e.ID, err)
		}
		if e.End, err = generic.ParseDate(end); err != nil {
			return nil, fmt.Errorf("event %s end: %w", e.ID, err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		list = append(list, e)
	}
	return list, rows.Err()
}

// Occurrences returns every calendar event as an engine occurrence.
func (s *Store) Occurrences(ctx context.Context) ([]events.Occurrence, error) {
	list, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	occs := make([]events.Occurrence, len(list))
	for i, e := range list {
		occs[i] = e.Occurrence()
	}
	return occs, nil
}

// DeleteEvent removes a calendar event.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM calendar_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("event %s: %w", id, generic.ErrEventNotFound)
	}
	return nil
}

// =============================================================================
// OUTCOME LOG (generic.OutcomeStore interface)
// =============================================================================

// GetOutcomes returns the outcome log of a profile.
func (s *Store) GetOutcomes(ctx context.Context, profileID generic.ProfileID) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT occurrence_key, outcome FROM outcomes WHERE profile_id = ?", profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	log := make(map[string]string)
	for rows.Next() {
		var key, outcome string
		if err := rows.Scan(&key, &outcome); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		log[key] = outcome
	}
	return log, rows.Err()
}

// SetOutcome records the outcome of an occurrence, replacing any earlier one.
func (s *Store) SetOutcome(ctx context.Context, profileID generic.ProfileID, key, outcome string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (profile_id, occurrence_key, outcome, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile_id, occurrence_key) DO UPDATE SET
			outcome = excluded.outcome,
			updated_at = excluded.updated_at
	`, profileID, key, outcome, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set outcome: %w", err)
	}
	return nil
}

// ClearOutcome removes a logged outcome so the occurrence resolves by state again.
func (s *Store) ClearOutcome(ctx context.Context, profileID generic.ProfileID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM outcomes WHERE profile_id = ? AND occurrence_key = ?", profileID, key)
	if err != nil {
		return fmt.Errorf("failed to clear outcome: %w", err)
	}
	return nil
}

// =============================================================================
// SPIN LOG (generic.SpinStore interface)
// =============================================================================

// GetSpins returns the planned spins of a profile by wheel key.
func (s *Store) GetSpins(ctx context.Context, profileID generic.ProfileID) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT wheel_key, spins FROM spins WHERE profile_id = ?", profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to query spins: %w", err)
	}
	defer rows.Close()

	log := make(map[string]int)
	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan spins: %w", err)
		}
		log[key] = n
	}
	return log, rows.Err()
}

// SetSpins records planned spins for a wheel occurrence. Negative counts are stored as 0.
func (s *Store) SetSpins(ctx context.Context, profileID generic.ProfileID, key string, spins int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if spins < 0 {
		spins = 0
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO spins (profile_id, wheel_key, spins, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(profile_id, wheel_key) DO UPDATE SET
			spins = excluded.spins,
			updated_at = excluded.updated_at
	`, profileID, key, spins, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to set spins: %w", err)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"spins", "outcomes", "goals", "calendar_events", "profiles"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}
