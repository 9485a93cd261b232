// Package main provides a small client CLI for exercising the server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/ajpelaez/hymnbox/internal/app/skill"
)

var (
	app    = kingpin.New("hymnctl", "hymnbox client for testing")
	server = app.Flag("server", "Server address").Default("http://localhost:8080").String()
	user   = app.Flag("user", "User id").Default("local-test-user").String()

	playCmd  = app.Command("play", "Play a hymn by number or name")
	playSlot = playCmd.Arg("slot", "Hymn number or name").Required().String()

	resumeCmd = app.Command("resume", "Resume playback")
	pauseCmd  = app.Command("pause", "Pause playback")
	nextCmd   = app.Command("next", "Skip to the next hymn")
	prevCmd   = app.Command("prev", "Go back to the previous hymn")

	loopCmd = app.Command("loop", "Toggle loop mode")
	loopOn  = loopCmd.Arg("state", "on or off").Required().Enum("on", "off")

	shuffleCmd = app.Command("shuffle", "Toggle shuffle mode")
	shuffleOn  = shuffleCmd.Arg("state", "on or off").Required().Enum("on", "off")

	startOverCmd = app.Command("startover", "Restart the current hymn")

	eventCmd    = app.Command("event", "Send a raw player lifecycle event")
	eventKind   = eventCmd.Arg("kind", "Event kind, e.g. PlaybackStarted").Required().String()
	eventToken  = eventCmd.Flag("token", "Player token").String()
	eventOffset = eventCmd.Flag("offset", "Offset in milliseconds").Int64()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var ev skill.Event
	switch command {
	case playCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventPlay, Slot: *playSlot}
	case resumeCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventResume}
	case pauseCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventPauseStop}
	case nextCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventNext}
	case prevCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventPrevious}
	case loopCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventLoopOff}
		if *loopOn == "on" {
			ev.Kind = skill.EventLoopOn
		}
	case shuffleCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventShuffleOff}
		if *shuffleOn == "on" {
			ev.Kind = skill.EventShuffleOn
		}
	case startOverCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventStartOver}
	case eventCmd.FullCommand():
		ev = skill.Event{Kind: skill.EventKind(*eventKind), Token: *eventToken, OffsetMillis: *eventOffset}
	}

	sendEvent(ev)
}

func sendEvent(ev skill.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/v1/users/%s/events", *server, *user)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Server returned %s\n", resp.Status)
		os.Exit(1)
	}

	var out struct {
		Speech string `json:"speech"`
		Play   *struct {
			Behavior string `json:"behavior"`
			URL      string `json:"url"`
			Token    string `json:"token"`
			Offset   int64  `json:"offsetInMilliseconds"`
		} `json:"play"`
		Stop bool `json:"stop"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	if out.Speech != "" {
		fmt.Printf("Speech: %s\n", out.Speech)
	}
	if out.Play != nil {
		fmt.Printf("Directive: %s %s (token %s, offset %dms)\n",
			out.Play.Behavior, out.Play.URL, out.Play.Token, out.Play.Offset)
	}
	if out.Stop {
		fmt.Println("Directive: STOP")
	}
}
