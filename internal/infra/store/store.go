// Package store provides durable per-user persistence of playback state.
package store

import (
	"context"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
)

// Store is a per-user key/value store for the two playback records.
//
// Load/Save carry no optimistic-concurrency check. The design assumes at
// most one in-flight event per user; concurrent events for the same user
// (say a navigation command racing a player lifecycle event) can lose an
// update. Callers wanting stronger guarantees need a compare-and-swap or
// per-user serialization at this boundary.
type Store interface {
	// Load returns the user's state and whether a record existed.
	Load(ctx context.Context, userID string) (*state.State, bool, error)
	// Save writes the user's state, replacing any previous record.
	Save(ctx context.Context, userID string, st *state.State) error
	// Close releases backend resources.
	Close() error
}
