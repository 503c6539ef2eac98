package macro

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/key"
)

// Control identifies one of the four control keys.
type Control uint8

const (
	// ControlNone is not a control key.
	ControlNone Control = iota
	// ControlStartRecord starts a new recording.
	ControlStartRecord
	// ControlStop stops playback or recording.
	ControlStop
	// ControlToggleLoop flips the loop flag.
	ControlToggleLoop
	// ControlPlayPause starts, pauses or resumes playback.
	ControlPlayPause
)

// String returns the control name.
func (c Control) String() string {
	switch c {
	case ControlStartRecord:
		return "start-record"
	case ControlStop:
		return "stop"
	case ControlToggleLoop:
		return "toggle-loop"
	case ControlPlayPause:
		return "play-pause"
	default:
		return "none"
	}
}

// Bindings assigns keys to the control functions.
type Bindings struct {
	StartRecord key.Key
	Stop        key.Key
	ToggleLoop  key.Key
	PlayPause   key.Key
}

// DefaultBindings returns F4 record, F2 stop, F3 loop and F1 play/pause.
func DefaultBindings() Bindings {
	return Bindings{
		StartRecord: key.KeyF4,
		Stop:        key.KeyF2,
		ToggleLoop:  key.KeyF3,
		PlayPause:   key.KeyF1,
	}
}

// Lookup returns the control bound to k, or ControlNone.
func (b Bindings) Lookup(k key.Key) Control {
	switch k {
	case key.KeyNone:
		return ControlNone
	case b.StartRecord:
		return ControlStartRecord
	case b.Stop:
		return ControlStop
	case b.ToggleLoop:
		return ControlToggleLoop
	case b.PlayPause:
		return ControlPlayPause
	}
	return ControlNone
}

// Validate checks that every binding is a known key and that no key is
// bound twice.
func (b Bindings) Validate() error {
	bound := map[key.Key]string{}
	for _, kb := range []struct {
		name string
		k    key.Key
	}{
		{"start_record", b.StartRecord},
		{"stop", b.Stop},
		{"toggle_loop", b.ToggleLoop},
		{"play_pause", b.PlayPause},
	} {
		if !kb.k.IsValid() {
			return fmt.Errorf("%w: %s has no key", ErrInvalidBindings, kb.name)
		}
		if other, dup := bound[kb.k]; dup {
			return fmt.Errorf("%w: %s and %s both use %s", ErrInvalidBindings, other, kb.name, kb.k)
		}
		bound[kb.k] = kb.name
	}
	return nil
}

// Recorder is the capture controller. It turns raw input into control
// transitions and recorded events.
type Recorder struct {
	session  *Session
	player   *Player
	opts     options
	bindings atomic.Pointer[Bindings]
}

// NewRecorder creates a capture controller for session.
// The player receives the start and stop requests of the control keys.
func NewRecorder(session *Session, player *Player, opts ...Option) (*Recorder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.bindings.Validate(); err != nil {
		return nil, err
	}

	r := &Recorder{
		session: session,
		player:  player,
		opts:    o,
	}
	b := o.bindings
	r.bindings.Store(&b)
	return r, nil
}

// Bindings returns the active control key bindings.
func (r *Recorder) Bindings() Bindings {
	return *r.bindings.Load()
}

// SetBindings replaces the control key bindings.
// Events handled after SetBindings returns use the new bindings.
func (r *Recorder) SetBindings(b Bindings) error {
	if err := b.Validate(); err != nil {
		return err
	}
	r.bindings.Store(&b)
	return nil
}

// Handle processes one raw input event.
// A press of a control key runs its transition. Control key releases are
// dropped. Anything else is recorded if the session is recording.
func (r *Recorder) Handle(ev input.RawEvent) input.Outcome {
	start := time.Now()
	outcome := r.handle(ev)
	r.opts.metrics.RecordEvent(ev.Kind, outcome, time.Since(start))
	return outcome
}

func (r *Recorder) handle(ev input.RawEvent) input.Outcome {
	if ev.Kind.IsKey() {
		if c := r.bindings.Load().Lookup(ev.Key); c != ControlNone {
			if ev.Kind != input.KindKeyPress {
				return input.OutcomeIgnored
			}
			r.dispatch(c)
			return input.OutcomeControl
		}
	}

	a, ok := ActionFromRaw(ev)
	if !ok || !r.session.Record(a) {
		return input.OutcomeIgnored
	}
	return input.OutcomeRecorded
}

// Run handles events until the channel closes or ctx is cancelled.
func (r *Recorder) Run(ctx context.Context, events <-chan input.RawEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			r.Handle(ev)
		}
	}
}
