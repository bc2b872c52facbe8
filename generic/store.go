/*
store.go - Persistence interfaces for externally owned planner state

PURPOSE:
  The engine never owns state. Outcome logs and planned spins are kept by
  the caller in key-value stores, keyed by a stable occurrence identity,
  and passed into the engine as snapshots on every call.

KEY INTERFACES:
  OutcomeStore: occurrence key -> logged outcome tag, per profile
  SpinStore:    wheel occurrence key -> planned spin count, per profile

KEYS:
  Outcomes: "<category>_<start>_<end>"   e.g. "Ark of Osiris_2025-03-01_2025-03-02"
  Spins:    "wof_<start>_<end>"          e.g. "wof_2025-03-10_2025-03-12"

UPSERT CONTRACT:
  At most one value per key. Writing a key again replaces it; clearing an
  outcome returns the occurrence to "unlogged".

IMPLEMENTATIONS:
  - generic/store/memory.go: In-memory for tests and dev
  - store/sqlite/sqlite.go: SQLite

SEE ALSO:
  - events/resolve.go: Consumes outcome snapshots
  - forecast/projection.go: Consumes spin snapshots
*/
package generic

import "context"

// =============================================================================
// OUTCOME STORE
// =============================================================================

// OutcomeStore persists logged occurrence outcomes.
type OutcomeStore interface {
	// GetOutcomes returns a snapshot of every logged outcome for the profile.
	GetOutcomes(ctx context.Context, profileID ProfileID) (map[string]string, error)

	// SetOutcome upserts the outcome for one occurrence key.
	SetOutcome(ctx context.Context, profileID ProfileID, key, outcome string) error

	// ClearOutcome removes a logged outcome. Missing keys are not an error.
	ClearOutcome(ctx context.Context, profileID ProfileID, key string) error
}

// =============================================================================
// SPIN STORE
// =============================================================================

// SpinStore persists planned spins per wheel occurrence.
type SpinStore interface {
	// GetSpins returns a snapshot of planned spins for the profile.
	GetSpins(ctx context.Context, profileID ProfileID) (map[string]int, error)

	// SetSpins upserts planned spins for one wheel key. Negative counts are stored as 0.
	SetSpins(ctx context.Context, profileID ProfileID, key string, spins int) error
}

// LogStore is implemented by stores that hold both logs.
type LogStore interface {
	OutcomeStore
	SpinStore
}
