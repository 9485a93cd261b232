package playback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajpelaez/hymnbox/internal/app/session/state"
	"github.com/ajpelaez/hymnbox/internal/domain/track"
)

// PlayRequest describes how a play operation was triggered.
type PlayRequest struct {
	Slot        string // raw slot value for explicit track requests
	Custom      bool   // explicit request carrying a slot value
	UserCommand bool   // spoken command rather than a button/continuation event
}

// Controller decides which track to play next, applying skip-on-unavailable
// and loop-boundary policy. All methods mutate the given state in place and
// return the response for the dispatcher; clarification responses leave the
// state untouched.
type Controller struct {
	catalog *track.Catalog
	msgs    Messages
}

// NewController creates a playback controller for the given catalog.
func NewController(catalog *track.Catalog, msgs Messages) *Controller {
	return &Controller{
		catalog: catalog,
		msgs:    msgs,
	}
}

// Play produces a REPLACE_ALL directive for the requested or current track.
func (c *Controller) Play(st *state.State, req PlayRequest) Response {
	info := &st.Info

	if req.Custom {
		if strings.TrimSpace(req.Slot) == "" {
			return c.clarify(c.msgs.GetMessage("no_slot"))
		}

		trk, found := c.catalog.Resolve(req.Slot)
		if !found {
			return c.clarify(fmt.Sprintf(c.msgs.GetMessage("track_not_found"), req.Slot))
		}
		if c.catalog.IsUnavailable(trk.Number) {
			return c.clarify(fmt.Sprintf(c.msgs.GetMessage("track_unavailable"), trk.Number))
		}

		info.Index = info.PlayOrder.IndexOf(trk.Number - 1)
		info.NextEnqueued = false
	} else if c.catalog.IsUnavailable(c.catalog.At(info.PlayOrder[info.Index]).Number) {
		// Resuming onto an excluded track: jump forward instead of playing it.
		return c.Next(st, req.UserCommand)
	}

	trk := c.catalog.At(info.PlayOrder[info.Index])
	info.NextEnqueued = false

	resp := Response{
		Speech:     trk.Name,
		EndSession: true,
		Play: &PlayDirective{
			Behavior:     ReplaceAll,
			URL:          trk.URL,
			Token:        strconv.Itoa(info.PlayOrder[info.Index]),
			OffsetMillis: info.OffsetMillis,
		},
	}

	if req.UserCommand && info.IndexChanged {
		info.IndexChanged = false
		resp.Card = &Card{
			Title:   fmt.Sprintf(c.msgs.GetMessage("card_title"), trk.Number),
			Content: trk.Name,
		}
	}

	return resp
}

// Next advances to the following play-order position, or stops at the end
// of the list when loop is off.
func (c *Controller) Next(st *state.State, userCommand bool) Response {
	candidate := (st.Info.Index + 1) % c.catalog.Len()

	if candidate == 0 && !st.Setting.Loop {
		return Response{
			Speech: c.msgs.GetMessage("end_of_list"),
			Stop:   true,
		}
	}

	st.Info.Index = candidate
	st.Info.OffsetMillis = 0
	st.Info.IndexChanged = true

	return c.Play(st, PlayRequest{UserCommand: userCommand})
}

// Previous steps back one play-order position, or stops at the start of the
// list when loop is off.
func (c *Controller) Previous(st *state.State, userCommand bool) Response {
	candidate := st.Info.Index - 1

	if candidate == -1 {
		if !st.Setting.Loop {
			return Response{
				Speech: c.msgs.GetMessage("start_of_list"),
				Stop:   true,
			}
		}
		candidate = c.catalog.Len() - 1
	}

	st.Info.Index = candidate
	st.Info.OffsetMillis = 0
	st.Info.IndexChanged = true

	return c.Play(st, PlayRequest{UserCommand: userCommand})
}

// Stop pauses playback. Index and offset are preserved so a later resume
// continues where the user left off.
func (c *Controller) Stop(st *state.State) Response {
	return Response{Stop: true}
}

// SetLoop flips the loop setting.
func (c *Controller) SetLoop(st *state.State, on bool) Response {
	st.Setting.Loop = on

	code := "loop_off"
	if on {
		code = "loop_on"
	}
	return Response{Speech: c.msgs.GetMessage(code)}
}

// SetShuffle rewrites the play order for the new shuffle setting and starts
// playing under it. Turning shuffle off remaps the index back to the catalog
// index currently playing, so the same track continues.
func (c *Controller) SetShuffle(st *state.State, on bool) Response {
	if on {
		st.Setting.Shuffle = true
		st.Info.PlayOrder = state.Shuffled(c.catalog.Len())
		st.Info.Index = 0
		st.Info.OffsetMillis = 0
		st.Info.IndexChanged = true
	} else if st.Setting.Shuffle {
		st.Setting.Shuffle = false
		st.Info.Index = st.Info.PlayOrder[st.Info.Index]
		st.Info.PlayOrder = state.Identity(c.catalog.Len())
	}

	return c.Play(st, PlayRequest{UserCommand: true})
}

// StartOver replays the current track from the beginning.
func (c *Controller) StartOver(st *state.State) Response {
	st.Info.OffsetMillis = 0
	return c.Play(st, PlayRequest{UserCommand: true})
}

// RestartFromBeginning rewinds to the first play-order position and forgets
// the previous session.
func (c *Controller) RestartFromBeginning(st *state.State) Response {
	st.Info.Index = 0
	st.Info.OffsetMillis = 0
	st.Info.IndexChanged = true
	st.Info.HadPriorSession = false

	return c.Play(st, PlayRequest{UserCommand: true})
}

// clarify builds a user-facing clarification that keeps the session open.
func (c *Controller) clarify(speech string) Response {
	return Response{
		Speech:   speech,
		Reprompt: c.msgs.GetMessage("reprompt"),
		Card:     &Card{Content: speech},
	}
}
