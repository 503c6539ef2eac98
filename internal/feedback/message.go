package feedback

import (
	"fmt"
	"time"
)

// Kind identifies a feedback message.
type Kind int

const (
	// KindRecordingStarted is published when a new recording begins.
	KindRecordingStarted Kind = iota

	// KindRecordingStopped is published when recording ends.
	KindRecordingStopped

	// KindPlaybackStarting is published before the scheduler is spawned.
	KindPlaybackStarting

	// KindPlaybackStarted is published once playback is running.
	KindPlaybackStarted

	// KindPlaybackPaused is published when playback is paused.
	KindPlaybackPaused

	// KindPlaybackResumed is published when paused playback resumes.
	KindPlaybackResumed

	// KindPlaybackStopping is published when a stop is about to join the scheduler.
	KindPlaybackStopping

	// KindPlaybackStopped is published by a scheduler that was told to stop.
	KindPlaybackStopped

	// KindPlaybackLooping is published when a new pass begins.
	KindPlaybackLooping

	// KindPlaybackFinished is published when the last pass completes.
	KindPlaybackFinished

	// KindPlaybackFailed is published when the sink failure policy halts playback.
	KindPlaybackFailed

	// KindLoopToggled is published when looping is switched on or off.
	KindLoopToggled

	// KindNothingToPlay is published when play is requested with no events.
	KindNothingToPlay

	// KindAlreadyPlaying is published when play is requested during playback.
	KindAlreadyPlaying

	// KindStopRequested is published when the stop key is pressed.
	KindStopRequested
)

var kindNames = map[Kind]string{
	KindRecordingStarted: "recording-started",
	KindRecordingStopped: "recording-stopped",
	KindPlaybackStarting: "playback-starting",
	KindPlaybackStarted:  "playback-started",
	KindPlaybackPaused:   "playback-paused",
	KindPlaybackResumed:  "playback-resumed",
	KindPlaybackStopping: "playback-stopping",
	KindPlaybackStopped:  "playback-stopped",
	KindPlaybackLooping:  "playback-looping",
	KindPlaybackFinished: "playback-finished",
	KindPlaybackFailed:   "playback-failed",
	KindLoopToggled:      "loop-toggled",
	KindNothingToPlay:    "nothing-to-play",
	KindAlreadyPlaying:   "already-playing",
	KindStopRequested:    "stop-requested",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Message is one feedback occurrence.
// Fields other than Kind and Time are only meaningful for some kinds.
type Message struct {
	Kind Kind

	// Events is the number of recorded events.
	Events int

	// Length is the recording length.
	Length time.Duration

	// Simulated is the playback position at the time of the message.
	Simulated time.Duration

	// Looping is the loop flag after a toggle.
	Looping bool

	// Err is the failure behind KindPlaybackFailed.
	Err error

	// Time is when the message was produced.
	Time time.Time
}

// Text renders the message for a human reader.
func (m Message) Text() string {
	switch m.Kind {
	case KindRecordingStarted:
		return "Recording started."
	case KindRecordingStopped:
		return fmt.Sprintf("Recording stopped. %d events recorded.", m.Events)
	case KindPlaybackStarting:
		return fmt.Sprintf("Starting playback of %d events.", m.Events)
	case KindPlaybackStarted:
		return m.clockText("Started")
	case KindPlaybackPaused:
		return m.clockText("Paused")
	case KindPlaybackResumed:
		return m.clockText("Resumed")
	case KindPlaybackStopping:
		return "Stopping playback..."
	case KindPlaybackStopped:
		return "Playback was stopped."
	case KindPlaybackLooping:
		return "Looping playback..."
	case KindPlaybackFinished:
		return "Playback finished."
	case KindPlaybackFailed:
		if m.Err != nil {
			return fmt.Sprintf("Playback failed: %v", m.Err)
		}
		return "Playback failed."
	case KindLoopToggled:
		if m.Looping {
			return "Looping enabled"
		}
		return "Looping disabled"
	case KindNothingToPlay:
		return "No recorded events to play."
	case KindAlreadyPlaying:
		return "Already playing."
	case KindStopRequested:
		return "Stop requested."
	default:
		return m.Kind.String()
	}
}

func (m Message) clockText(action string) string {
	return fmt.Sprintf("%s. Recording length: %d ms. Current simulated time: %d ms.",
		action, m.Length.Milliseconds(), m.Simulated.Milliseconds())
}

// Severity groups kinds for presentation.
type Severity int

const (
	// SeverityInfo is routine status.
	SeverityInfo Severity = iota
	// SeverityNotice is a user request that could not be satisfied.
	SeverityNotice
	// SeverityError is a failure.
	SeverityError
)

// Severity returns how prominent the message should be.
func (m Message) Severity() Severity {
	switch m.Kind {
	case KindNothingToPlay, KindAlreadyPlaying:
		return SeverityNotice
	case KindPlaybackFailed:
		return SeverityError
	default:
		return SeverityInfo
	}
}
