// Package store provides in-memory log store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/heads-planner/generic"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu       sync.RWMutex
	outcomes map[generic.ProfileID]map[string]string
	spins    map[generic.ProfileID]map[string]int
}

var _ generic.LogStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		outcomes: make(map[generic.ProfileID]map[string]string),
		spins:    make(map[generic.ProfileID]map[string]int),
	}
}

// GetOutcomes returns a copy; callers may mutate it freely.
func (m *Memory) GetOutcomes(_ context.Context, profileID generic.ProfileID) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]string, len(m.outcomes[profileID]))
	for k, v := range m.outcomes[profileID] {
		result[k] = v
	}
	return result, nil
}

func (m *Memory) SetOutcome(_ context.Context, profileID generic.ProfileID, key, outcome string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.outcomes[profileID] == nil {
		m.outcomes[profileID] = make(map[string]string)
	}
	m.outcomes[profileID][key] = outcome
	return nil
}

func (m *Memory) ClearOutcome(_ context.Context, profileID generic.ProfileID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.outcomes[profileID], key)
	return nil
}

func (m *Memory) GetSpins(_ context.Context, profileID generic.ProfileID) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]int, len(m.spins[profileID]))
	for k, v := range m.spins[profileID] {
		result[k] = v
	}
	return result, nil
}

func (m *Memory) SetSpins(_ context.Context, profileID generic.ProfileID, key string, spins int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if spins < 0 {
		spins = 0
	}
	if m.spins[profileID] == nil {
		m.spins[profileID] = make(map[string]int)
	}
	m.spins[profileID][key] = spins
	return nil
}

// Reset drops every log.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.outcomes = make(map[generic.ProfileID]map[string]string)
	m.spins = make(map[generic.ProfileID]map[string]int)
	return nil
}
