package input

import (
	"context"
	"errors"
)

// Source errors.
var (
	// ErrSourceUnavailable indicates the global listener could not be attached.
	ErrSourceUnavailable = errors.New("input source unavailable")

	// ErrSourceRunning indicates Start was called on a running source.
	ErrSourceRunning = errors.New("input source already running")
)

// Source delivers system-wide input events.
type Source interface {
	// Start attaches to the operating system and returns the event stream.
	// The channel is closed when the source stops or ctx is cancelled.
	Start(ctx context.Context) (<-chan RawEvent, error)

	// Stop detaches from the operating system. Safe to call more than once.
	Stop() error
}
