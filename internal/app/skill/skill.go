// Package skill routes inbound events to the playback controller and the
// event reconciler, applying in-session gating and last-resort recovery.
package skill

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/ajpelaez/hymnbox/internal/app/playback"
	"github.com/ajpelaez/hymnbox/internal/app/session"
	"github.com/ajpelaez/hymnbox/internal/app/session/state"
)

// Service handles one inbound event end to end: load state, compute the
// response, persist state.
type Service struct {
	sessions   *session.Manager
	controller *playback.Controller
	reconciler *playback.Reconciler
	msgs       playback.Messages
}

// New creates the event handling service.
func New(sessions *session.Manager, controller *playback.Controller, reconciler *playback.Reconciler, msgs playback.Messages) *Service {
	return &Service{
		sessions:   sessions,
		controller: controller,
		reconciler: reconciler,
		msgs:       msgs,
	}
}

// HandleEvent processes one event for the user. It never fails: any fault
// is recovered into a uniform clarification so the conversation does not
// dead-end.
func (s *Service) HandleEvent(ctx context.Context, userID string, ev Event) playback.Response {
	st, err := s.sessions.Load(ctx, userID)
	if err != nil {
		zlog.Error().Err(err).Msgf("failed to load session state: user=%s", userID)
		return s.apology()
	}

	resp := s.dispatch(st, ev)
	s.sessions.Persist(ctx, userID, st)

	return resp
}

// dispatch routes the event. Gating mirrors the voice surface: navigation
// and mode toggles need an active session, Yes/No/CancelStop apply only
// outside one.
func (s *Service) dispatch(st *state.State, ev Event) playback.Response {
	if ev.isPlayerEvent() {
		resp, err := s.reconciler.Handle(st, ev.playerEvent())
		if err != nil {
			zlog.Error().Err(err).Msgf("failed to reconcile player event: kind=%s", ev.Kind)
			return s.apology()
		}
		return resp
	}

	inSession := st.Info.InSession

	switch ev.Kind {
	case EventLaunch:
		speech := s.msgs.GetMessage("welcome")
		return playback.Response{
			Speech:   speech,
			Reprompt: s.msgs.GetMessage("reprompt"),
			Card:     &playback.Card{Content: speech},
		}

	case EventHelp:
		speech := s.msgs.GetMessage("help")
		return playback.Response{
			Speech:   speech,
			Reprompt: speech,
			Card:     &playback.Card{Title: "Help", Content: speech},
		}

	case EventPlay:
		return s.controller.Play(st, playback.PlayRequest{Slot: ev.Slot, Custom: true, UserCommand: true})

	case EventResume:
		return s.controller.Play(st, playback.PlayRequest{UserCommand: true})

	case EventPauseStop:
		if !inSession {
			return s.goodbye()
		}
		return s.controller.Stop(st)

	case EventCancelStop:
		if inSession {
			return s.controller.Stop(st)
		}
		return s.goodbye()

	case EventNext:
		if !inSession {
			return s.apology()
		}
		return s.controller.Next(st, true)

	case EventPrevious:
		if !inSession {
			return s.apology()
		}
		return s.controller.Previous(st, true)

	case EventLoopOn, EventLoopOff:
		if !inSession {
			return s.apology()
		}
		return s.controller.SetLoop(st, ev.Kind == EventLoopOn)

	case EventShuffleOn, EventShuffleOff:
		if !inSession {
			return s.apology()
		}
		return s.controller.SetShuffle(st, ev.Kind == EventShuffleOn)

	case EventStartOver:
		if !inSession {
			return s.apology()
		}
		return s.controller.StartOver(st)

	case EventYes:
		if inSession {
			return s.apology()
		}
		return s.controller.Play(st, playback.PlayRequest{UserCommand: true})

	case EventNo:
		if inSession {
			return s.apology()
		}
		return s.controller.RestartFromBeginning(st)

	case EventSessionEnded:
		zlog.Info().Msgf("session ended: reason=%s", ev.Reason)
		return playback.Response{}

	case EventSystemException:
		zlog.Error().Msgf("system exception encountered: reason=%s", ev.Reason)
		return playback.Response{}

	default:
		zlog.Warn().Msgf("unroutable event: kind=%s", ev.Kind)
		return s.apology()
	}
}

// apology is the last-resort response for anything unroutable or faulted.
func (s *Service) apology() playback.Response {
	speech := s.msgs.GetMessage("default_error")
	return playback.Response{
		Speech:   speech,
		Reprompt: speech,
	}
}

func (s *Service) goodbye() playback.Response {
	return playback.Response{
		Speech:     s.msgs.GetMessage("goodbye"),
		EndSession: true,
	}
}
