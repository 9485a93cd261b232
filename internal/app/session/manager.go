// Package session brackets every handled event with durable state access:
// first-use initialization, load before handling, persist after.
package session

import (
	"context"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
	"github.com/ajpelaez/hymnbox/internal/infra/store"
)

// Manager loads state before an event is handled and persists it afterwards.
type Manager struct {
	store      store.Store
	catalogLen int
}

// NewManager creates a session manager over the given store for a catalog
// of catalogLen tracks.
func NewManager(st store.Store, catalogLen int) *Manager {
	return &Manager{
		store:      st,
		catalogLen: catalogLen,
	}
}

// Load returns the user's state, writing first-use defaults when no record
// exists yet.
func (m *Manager) Load(ctx context.Context, userID string) (*state.State, error) {
	st, found, err := m.store.Load(ctx, userID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load state for user %s", userID)
	}

	if !found {
		st = state.NewDefault(m.catalogLen)
		if err := m.store.Save(ctx, userID, st); err != nil {
			return nil, errors.Wrapf(err, "failed to initialize state for user %s", userID)
		}
		zlog.Debug().Msgf("initialized playback state: user=%s tracks=%d", userID, m.catalogLen)
	}

	return st, nil
}

// Persist writes the state back after handling. It runs for every response,
// mutated or not; a failure is logged and never fails the response path.
func (m *Manager) Persist(ctx context.Context, userID string, st *state.State) {
	if err := m.store.Save(ctx, userID, st); err != nil {
		zlog.Error().Err(err).Msgf("failed to persist playback state: user=%s", userID)
	}
}
