// Package state defines the durable per-user playback records.
package state

// Setting holds the user's playback mode switches.
type Setting struct {
	Loop    bool `json:"loop"`
	Shuffle bool `json:"shuffle"`
}

// Info holds the durable playback position and session flags.
type Info struct {
	PlayOrder    Order  `json:"playOrder"`            // play-order position -> catalog index
	Index        int    `json:"index"`                // current position within PlayOrder
	OffsetMillis int64  `json:"offsetInMilliseconds"` // last known offset of the current track
	Token        string `json:"token"`                // correlates directives with player events

	NextEnqueued    bool `json:"nextStreamEnqueued"`         // successor already queued for gapless playback
	InSession       bool `json:"inPlaybackSession"`          // a track is playing or paused
	HadPriorSession bool `json:"hasPreviousPlaybackSession"` // any track ever started for this user
	IndexChanged    bool `json:"playbackIndexChanged"`       // one-shot, gates the display card
}

// State bundles the two records persisted per user.
type State struct {
	Setting Setting `json:"playbackSetting"`
	Info    Info    `json:"playbackInfo"`
}

// NewDefault returns the first-use state for an n-track catalog.
func NewDefault(n int) *State {
	return &State{
		Info: Info{
			PlayOrder:    Identity(n),
			IndexChanged: true,
		},
	}
}
