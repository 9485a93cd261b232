package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
)

// Memory is an in-process store used by tests and the memory driver.
// Records are kept JSON-encoded so loads never alias saved state.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context, userID string) (*state.State, bool, error) {
	m.mu.RLock()
	data, ok := m.records[userID]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	var st state.State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, false, errors.Wrapf(err, "failed to decode state for user %s", userID)
	}
	return &st, true, nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, userID string, st *state.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrapf(err, "failed to encode state for user %s", userID)
	}

	m.mu.Lock()
	m.records[userID] = data
	m.mu.Unlock()
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	return nil
}
