/*
errors.go - Centralized error types for the planner

PURPOSE:
  All error types in one place for consistency and discoverability.
  Engine functions are total and never return these; they are used by the
  layers around the engine (catalog loading, stores, API input handling).

ERROR CATEGORIES:
  1. Lookup errors - Missing profile, goal, calendar event
  2. Validation errors - Bad outcome tag, bad period, bad catalog
  3. Store errors - Wrapped driver failures (fmt.Errorf with %w)

USAGE:
  if errors.Is(err, generic.ErrProfileNotFound) {
      // 404
  }

SEE ALSO:
  - events/category.go: Returns InvalidOutcomeError
  - factory/catalog.go: Returns ConfigError
  - api/handlers.go: Maps errors to HTTP status
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrProfileNotFound is returned when a referenced profile doesn't exist.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrGoalNotFound is returned when a goal id is not part of the profile.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrEventNotFound is returned when a calendar event doesn't exist.
	ErrEventNotFound = errors.New("calendar event not found")

	// ErrUnknownCategory is returned when a category has no yield table entry.
	ErrUnknownCategory = errors.New("unknown event category")

	// ErrInvalidOutcome is returned when an outcome tag is not in the category's set.
	ErrInvalidOutcome = errors.New("invalid outcome for category")

	// ErrInvalidPeriod is returned when a period is malformed (end before start).
	ErrInvalidPeriod = errors.New("invalid period: end before start")

	// ErrInvalidConfig is returned when the static catalog fails validation.
	ErrInvalidConfig = errors.New("invalid catalog configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InvalidOutcomeError names the category and the rejected tag.
type InvalidOutcomeError struct {
	Category string
	Outcome  string
	Allowed  []string
}

func (e *InvalidOutcomeError) Error() string {
	return fmt.Sprintf("outcome %q not valid for %q (allowed: %v)", e.Outcome, e.Category, e.Allowed)
}

func (e *InvalidOutcomeError) Unwrap() error {
	return ErrInvalidOutcome
}

// ConfigError points at the offending catalog field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("catalog %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidOutcome) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrInvalidPeriod)
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrGoalNotFound) ||
		errors.Is(err, ErrEventNotFound)
}
