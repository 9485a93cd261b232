package session

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
	"github.com/ajpelaez/hymnbox/internal/infra/store"
)

// brokenStore fails every operation.
type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, userID string) (*state.State, bool, error) {
	return nil, false, errors.New("store down")
}

func (brokenStore) Save(ctx context.Context, userID string, st *state.State) error {
	return errors.New("store down")
}

func (brokenStore) Close() error { return nil }

func TestManager_Load_InitializesDefaults(t *testing.T) {
	mem := store.NewMemory()
	m := NewManager(mem, 10)
	ctx := context.Background()

	st, err := m.Load(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, state.Identity(10), st.Info.PlayOrder)
	assert.True(t, st.Info.IndexChanged)
	assert.False(t, st.Setting.Loop)

	// First-use defaults are written immediately, not just returned.
	persisted, found, err := mem.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, st, persisted)
}

func TestManager_Load_ReturnsExistingState(t *testing.T) {
	mem := store.NewMemory()
	m := NewManager(mem, 10)
	ctx := context.Background()

	st, err := m.Load(ctx, "user-1")
	require.NoError(t, err)

	st.Info.Index = 7
	st.Setting.Loop = true
	m.Persist(ctx, "user-1", st)

	again, err := m.Load(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, 7, again.Info.Index)
	assert.True(t, again.Setting.Loop)
}

func TestManager_Load_StoreFailure(t *testing.T) {
	m := NewManager(brokenStore{}, 10)

	_, err := m.Load(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestManager_Persist_FailureDoesNotPanic(t *testing.T) {
	m := NewManager(brokenStore{}, 10)

	assert.NotPanics(t, func() {
		m.Persist(context.Background(), "user-1", state.NewDefault(10))
	})
}

func TestManager_StatesAreIsolatedPerUser(t *testing.T) {
	mem := store.NewMemory()
	m := NewManager(mem, 5)
	ctx := context.Background()

	a, err := m.Load(ctx, "user-a")
	require.NoError(t, err)
	a.Info.Index = 3
	m.Persist(ctx, "user-a", a)

	b, err := m.Load(ctx, "user-b")
	require.NoError(t, err)

	assert.Equal(t, 0, b.Info.Index)
}
