package skill

import "github.com/ajpelaez/hymnbox/internal/app/playback"

// EventKind identifies one inbound event from the dispatcher.
type EventKind string

const (
	EventLaunch          EventKind = "Launch"
	EventPlay            EventKind = "PlayByNameOrNumber"
	EventResume          EventKind = "Resume"
	EventPauseStop       EventKind = "PauseStop"
	EventNext            EventKind = "Next"
	EventPrevious        EventKind = "Previous"
	EventLoopOn          EventKind = "LoopOn"
	EventLoopOff         EventKind = "LoopOff"
	EventShuffleOn       EventKind = "ShuffleOn"
	EventShuffleOff      EventKind = "ShuffleOff"
	EventStartOver       EventKind = "StartOver"
	EventYes             EventKind = "Yes"
	EventNo              EventKind = "No"
	EventHelp            EventKind = "Help"
	EventCancelStop      EventKind = "CancelStop"
	EventSessionEnded    EventKind = "SessionEnded"
	EventSystemException EventKind = "SystemException"
)

// Event is one inbound envelope. Player lifecycle kinds reuse the
// playback.PlayerEventKind names and carry token/offset/error.
type Event struct {
	Kind         EventKind `json:"kind"`
	Slot         string    `json:"slot,omitempty"`
	Token        string    `json:"token,omitempty"`
	OffsetMillis int64     `json:"offsetInMilliseconds,omitempty"`
	Error        string    `json:"error,omitempty"`
	Reason       string    `json:"reason,omitempty"`
}

// playerEvent converts the envelope into a player lifecycle event.
func (e Event) playerEvent() playback.PlayerEvent {
	return playback.PlayerEvent{
		Kind:         playback.PlayerEventKind(e.Kind),
		Token:        e.Token,
		OffsetMillis: e.OffsetMillis,
		Error:        e.Error,
	}
}

// isPlayerEvent reports whether the kind belongs to the player lifecycle
// family.
func (e Event) isPlayerEvent() bool {
	switch playback.PlayerEventKind(e.Kind) {
	case playback.PlayerStarted, playback.PlayerStopped, playback.PlayerNearlyFinished,
		playback.PlayerFinished, playback.PlayerFailed:
		return true
	}
	return false
}
