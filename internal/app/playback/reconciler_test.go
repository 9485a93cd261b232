package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
)

func newTestReconciler(t *testing.T) *Reconciler {
	t.Helper()
	return NewReconciler(newTestCatalog(t))
}

func TestReconciler_Started(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.PlayOrder = state.Order{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}

	resp, err := r.Handle(st, PlayerEvent{Kind: PlayerStarted, Token: "5"})
	require.NoError(t, err)

	assert.Nil(t, resp.Play)
	assert.Equal(t, "5", st.Info.Token)
	assert.Equal(t, 4, st.Info.Index)
	assert.True(t, st.Info.InSession)
	assert.True(t, st.Info.HadPriorSession)
}

func TestReconciler_Started_UnknownTokenKeepsIndex(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.Index = 3

	tests := []struct {
		name  string
		token string
	}{
		{name: "token outside play order", token: "42"},
		{name: "malformed token", token: "garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Handle(st, PlayerEvent{Kind: PlayerStarted, Token: tt.token})
			require.NoError(t, err)

			assert.Equal(t, 3, st.Info.Index)
			assert.Equal(t, tt.token, st.Info.Token)
			assert.True(t, st.Info.InSession)
		})
	}
}

func TestReconciler_Stopped(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.InSession = true

	_, err := r.Handle(st, PlayerEvent{Kind: PlayerStopped, Token: "7", OffsetMillis: 31500})
	require.NoError(t, err)

	assert.Equal(t, "7", st.Info.Token)
	assert.Equal(t, 7, st.Info.Index)
	assert.Equal(t, int64(31500), st.Info.OffsetMillis)
	// A stop can be a pause, the session flag is untouched.
	assert.True(t, st.Info.InSession)
}

func TestReconciler_Finished(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.InSession = true
	st.Info.HadPriorSession = true
	st.Info.NextEnqueued = true

	_, err := r.Handle(st, PlayerEvent{Kind: PlayerFinished})
	require.NoError(t, err)

	assert.False(t, st.Info.InSession)
	assert.False(t, st.Info.HadPriorSession)
	assert.False(t, st.Info.NextEnqueued)
}

func TestReconciler_NearlyFinished(t *testing.T) {
	tests := []struct {
		name          string
		index         int
		loop          bool
		enqueued      bool
		wantDirective bool
		wantToken     string
	}{
		{
			name:          "enqueues the successor",
			index:         2,
			wantDirective: true,
			wantToken:     "3",
		},
		{
			name:     "no-op when already enqueued",
			index:    2,
			enqueued: true,
		},
		{
			name:  "no-op at end of list with loop off",
			index: 9,
		},
		{
			name:          "wraps at end of list with loop on",
			index:         9,
			loop:          true,
			wantDirective: true,
			wantToken:     "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReconciler(t)

			st := state.NewDefault(10)
			st.Info.Index = tt.index
			st.Info.Token = "current"
			st.Info.NextEnqueued = tt.enqueued
			st.Setting.Loop = tt.loop

			resp, err := r.Handle(st, PlayerEvent{Kind: PlayerNearlyFinished})
			require.NoError(t, err)

			if !tt.wantDirective {
				assert.Nil(t, resp.Play)
				assert.Equal(t, tt.enqueued, st.Info.NextEnqueued)
				return
			}

			require.NotNil(t, resp.Play)
			assert.Equal(t, Enqueue, resp.Play.Behavior)
			assert.Equal(t, tt.wantToken, resp.Play.Token)
			assert.Equal(t, int64(0), resp.Play.OffsetMillis)
			assert.Equal(t, "current", resp.Play.ExpectedPreviousToken)
			assert.True(t, st.Info.NextEnqueued)
		})
	}
}

func TestReconciler_NearlyFinished_Idempotent(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.Token = "0"

	first, err := r.Handle(st, PlayerEvent{Kind: PlayerNearlyFinished})
	require.NoError(t, err)
	require.NotNil(t, first.Play)

	second, err := r.Handle(st, PlayerEvent{Kind: PlayerNearlyFinished})
	require.NoError(t, err)
	assert.Nil(t, second.Play)
}

func TestReconciler_Failed(t *testing.T) {
	r := newTestReconciler(t)

	st := state.NewDefault(10)
	st.Info.InSession = true

	resp, err := r.Handle(st, PlayerEvent{Kind: PlayerFailed, Token: "3", Error: "stream timeout"})
	require.NoError(t, err)

	// Failure ends the session silently: no directive, no speech.
	assert.False(t, st.Info.InSession)
	assert.Nil(t, resp.Play)
	assert.Empty(t, resp.Speech)
}

func TestReconciler_UnknownKind(t *testing.T) {
	r := newTestReconciler(t)

	_, err := r.Handle(state.NewDefault(10), PlayerEvent{Kind: "PlaybackTeleported"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPlayerEvent)
}
