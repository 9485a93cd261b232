package playback

import (
	"strconv"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
	"github.com/ajpelaez/hymnbox/internal/domain/track"
)

// PlayerEventKind identifies one audio player lifecycle notification.
type PlayerEventKind string

const (
	PlayerStarted        PlayerEventKind = "PlaybackStarted"
	PlayerStopped        PlayerEventKind = "PlaybackStopped"
	PlayerNearlyFinished PlayerEventKind = "PlaybackNearlyFinished"
	PlayerFinished       PlayerEventKind = "PlaybackFinished"
	PlayerFailed         PlayerEventKind = "PlaybackFailed"
)

// PlayerEvent carries the payload of a player lifecycle notification.
type PlayerEvent struct {
	Kind         PlayerEventKind
	Token        string
	OffsetMillis int64
	Error        string
}

// ErrUnknownPlayerEvent reports a lifecycle kind outside the contract of
// the upstream event source.
var ErrUnknownPlayerEvent = errors.New("unknown player event kind")

// Reconciler folds player lifecycle events into durable state and emits the
// enqueue directive for gapless continuation.
type Reconciler struct {
	catalog *track.Catalog
}

// NewReconciler creates a reconciler for the given catalog.
func NewReconciler(catalog *track.Catalog) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Handle applies one lifecycle event to the state. Only NearlyFinished can
// produce a directive.
func (r *Reconciler) Handle(st *state.State, ev PlayerEvent) (Response, error) {
	info := &st.Info

	switch ev.Kind {
	case PlayerStarted:
		info.Token = ev.Token
		r.syncIndexFromToken(info, ev.Token)
		info.InSession = true
		info.HadPriorSession = true

	case PlayerStopped:
		// A stop can be a pause, so InSession stays as-is.
		info.Token = ev.Token
		r.syncIndexFromToken(info, ev.Token)
		info.OffsetMillis = ev.OffsetMillis

	case PlayerFinished:
		info.InSession = false
		info.HadPriorSession = false
		info.NextEnqueued = false

	case PlayerNearlyFinished:
		if info.NextEnqueued {
			// At most one enqueue per track.
			return Response{}, nil
		}

		succ := (info.Index + 1) % r.catalog.Len()
		if succ == 0 && !st.Setting.Loop {
			// Do not enqueue past the end of the list.
			return Response{}, nil
		}

		info.NextEnqueued = true
		next := r.catalog.At(info.PlayOrder[succ])

		return Response{
			Play: &PlayDirective{
				Behavior:              Enqueue,
				URL:                   next.URL,
				Token:                 strconv.Itoa(info.PlayOrder[succ]),
				OffsetMillis:          0,
				ExpectedPreviousToken: info.Token,
			},
		}, nil

	case PlayerFailed:
		info.InSession = false
		zlog.Error().Msgf("playback failed: token=%s error=%s", ev.Token, ev.Error)

	default:
		return Response{}, errors.Wrapf(ErrUnknownPlayerEvent, "%q", ev.Kind)
	}

	return Response{}, nil
}

// syncIndexFromToken points Index at the play-order position named by the
// event token. A token absent from the order is a consistency fault: it is
// logged and the index is left unchanged.
func (r *Reconciler) syncIndexFromToken(info *state.Info, token string) {
	catalogIndex, err := strconv.Atoi(token)
	if err != nil {
		zlog.Warn().Msgf("player event carries malformed token %q, keeping index %d", token, info.Index)
		return
	}

	pos := info.PlayOrder.IndexOf(catalogIndex)
	if pos < 0 {
		zlog.Warn().Msgf("player token %q not present in play order, keeping index %d", token, info.Index)
		return
	}
	info.Index = pos
}
