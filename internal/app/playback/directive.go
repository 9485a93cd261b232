// Package playback implements the playback state machine: the controller
// that decides what to play next and the reconciler that folds player
// lifecycle events back into durable state.
package playback

// PlayBehavior selects how the player applies a play directive.
type PlayBehavior string

const (
	// ReplaceAll replaces the whole player queue with the given stream.
	ReplaceAll PlayBehavior = "REPLACE_ALL"
	// Enqueue appends the stream after the current one for gapless playback.
	Enqueue PlayBehavior = "ENQUEUE"
)

// PlayDirective instructs the external player to play or enqueue a stream.
type PlayDirective struct {
	Behavior     PlayBehavior `json:"behavior"`
	URL          string       `json:"url"`
	Token        string       `json:"token"`
	OffsetMillis int64        `json:"offsetInMilliseconds"`

	// ExpectedPreviousToken guards enqueue ordering: the player switches to
	// this stream only when the named token is the one that just finished.
	ExpectedPreviousToken string `json:"expectedPreviousToken,omitempty"`
}

// Card is a supplementary display card shown alongside the spoken response.
type Card struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Response is the outcome of one handled event: what to say, what to show
// and what the player should do next.
type Response struct {
	Speech     string         `json:"speech,omitempty"`
	Reprompt   string         `json:"reprompt,omitempty"`
	Card       *Card          `json:"card,omitempty"`
	Play       *PlayDirective `json:"play,omitempty"`
	Stop       bool           `json:"stop,omitempty"`
	EndSession bool           `json:"endSession,omitempty"`
}

// Messages resolves spoken message templates by code.
type Messages interface {
	GetMessage(code string) string
}
