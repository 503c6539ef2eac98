package macro

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToPlay is returned when playback is requested with no events.
	ErrNothingToPlay = errors.New("no recorded events to play")

	// ErrAlreadyPlaying is returned when playback is requested during playback.
	ErrAlreadyPlaying = errors.New("already playing")

	// ErrBusyRecording is returned when playback is requested while recording.
	ErrBusyRecording = errors.New("recording in progress")

	// ErrNilSink is returned when a Player is created without a sink.
	ErrNilSink = errors.New("sink cannot be nil")

	// ErrInvalidBindings is returned for unusable control key bindings.
	ErrInvalidBindings = errors.New("invalid control key bindings")

	// ErrUnknownPolicy is returned when a sink error policy name is not recognized.
	ErrUnknownPolicy = errors.New("unknown sink error policy")
)

// SinkError records a failed injection.
type SinkError struct {
	Event Event
	Err   error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("replay %s at %dms: %v", e.Event.Action, e.Event.Offset.Milliseconds(), e.Err)
}

// Unwrap returns the underlying error.
func (e *SinkError) Unwrap() error {
	return e.Err
}
