package macro

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dshills/macrorec/internal/feedback"
)

// SinkErrorPolicy decides what a failed injection does to playback.
type SinkErrorPolicy uint8

const (
	// PolicyHalt ends playback and returns the session to idle.
	PolicyHalt SinkErrorPolicy = iota
	// PolicySkip logs the failure and continues with the next event.
	PolicySkip
)

// String returns the policy name.
func (p SinkErrorPolicy) String() string {
	switch p {
	case PolicyHalt:
		return "halt"
	case PolicySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseSinkErrorPolicy parses "halt" or "skip".
func ParseSinkErrorPolicy(name string) (SinkErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "halt", "":
		return PolicyHalt, nil
	case "skip":
		return PolicySkip, nil
	default:
		return PolicyHalt, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}

// errStopped ends a pass whose playback no longer owns the session.
var errStopped = errors.New("playback stopped")

var closedDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Player schedules recorded events onto a Sink.
type Player struct {
	session *Session
	sink    Sink
	opts    options
	stats   *Stats

	// last is the most recently started playback.
	last atomic.Pointer[Playback]
}

// NewPlayer creates a player replaying session events into sink.
func NewPlayer(session *Session, sink Sink, opts ...Option) (*Player, error) {
	if sink == nil {
		return nil, ErrNilSink
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Player{
		session: session,
		sink:    sink,
		opts:    o,
		stats:   newStats(),
	}, nil
}

// Start begins playback on a new scheduler goroutine.
// Returns ErrNothingToPlay, ErrAlreadyPlaying or ErrBusyRecording when
// playback cannot start.
func (p *Player) Start() error {
	pb, err := p.session.BeginPlayback()
	if err != nil {
		return err
	}
	p.last.Store(pb)

	p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackStarting, Events: len(pb.Events)})
	p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackStarted, Length: pb.Length})
	p.opts.logger.Info("playback started", "id", pb.ID, "events", len(pb.Events))

	go p.run(pb)
	return nil
}

// Done returns a channel closed when the most recently started
// scheduler exits. It is already closed if none was started.
func (p *Player) Done() <-chan struct{} {
	if pb := p.last.Load(); pb != nil {
		return pb.done
	}
	return closedDone
}

// Stats returns a snapshot of playback activity.
func (p *Player) Stats() StatsSnapshot {
	return p.stats.Snapshot()
}

func (p *Player) run(pb *Playback) {
	defer close(pb.done)

	for pass := 0; ; pass++ {
		if pass > 0 {
			if !p.session.resetPass(pb) {
				p.stopped(pb)
				return
			}
			p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackLooping})
			p.opts.logger.Debug("playback pass", "id", pb.ID, "pass", pass+1)
		}
		p.stats.recordPass()

		if err := p.playPass(pb); err != nil {
			var serr *SinkError
			if errors.As(err, &serr) {
				p.failed(pb, serr)
			} else {
				p.stopped(pb)
			}
			return
		}

		switch p.awaitEnd(pb) {
		case passLoop:
			continue
		case passFinished:
			p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackFinished})
			p.opts.logger.Info("playback finished", "id", pb.ID, "passes", pass+1)
		default:
			p.stopped(pb)
		}
		return
	}
}

// playPass replays every event once.
func (p *Player) playPass(pb *Playback) error {
	for _, ev := range pb.Events {
		if err := p.waitFor(pb, ev.Offset); err != nil {
			return err
		}

		replayed, err := p.replay(ev.Action)
		switch {
		case err != nil:
			p.stats.recordSinkError()
			serr := &SinkError{Event: ev, Err: err}
			if p.opts.policy == PolicyHalt {
				return serr
			}
			p.opts.logger.Warn("replay failed, skipping", "id", pb.ID, "error", serr)
		case replayed:
			p.stats.recordReplayed()
		default:
			p.stats.recordSkipped()
		}
	}
	return nil
}

// waitFor blocks until the simulated clock reaches offset, compared in
// whole milliseconds. Returns errStopped if the playback is stopped or
// superseded first.
func (p *Player) waitFor(pb *Playback, offset time.Duration) error {
	due := offset.Milliseconds()
	for {
		v := p.session.observe(pb)
		if !v.current || !v.mode.IsPlayback() {
			return errStopped
		}
		if v.mode == ModePaused {
			p.sleep(p.opts.poll, v.changed)
			continue
		}

		at := v.elapsed.Milliseconds()
		if at >= due {
			p.stats.recordLateness(v.elapsed - offset)
			return nil
		}
		p.sleep(time.Duration(due-at)*time.Millisecond, v.changed)
	}
}

// awaitEnd decides what follows the last event of a pass.
// A pause at that point holds the decision until resume or stop.
func (p *Player) awaitEnd(pb *Playback) passEnd {
	for {
		end, changed := p.session.endPass(pb)
		if end != passHold {
			return end
		}
		p.sleep(p.opts.poll, changed)
	}
}

// sleep waits for d or until the session changes.
func (p *Player) sleep(d time.Duration, changed <-chan struct{}) {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
	case <-changed:
	}
}

// replay sends one action to the sink. Returns false for actions
// that have no replay form.
func (p *Player) replay(a Action) (bool, error) {
	switch a.Kind {
	case ActionMove:
		return true, p.sink.MoveTo(a.Position.X, a.Position.Y)

	case ActionButtonPress, ActionButtonRelease:
		if !IsReplayButton(a.Button) {
			return false, nil
		}
		if a.Kind == ActionButtonPress {
			return true, p.sink.PressButton(a.Button)
		}
		return true, p.sink.ReleaseButton(a.Button)

	case ActionWheel:
		steps := a.Wheel.Steps()
		if len(steps) == 0 {
			return false, nil
		}
		for _, step := range steps {
			if err := p.sink.Scroll(step.Amount, step.Axis); err != nil {
				return true, err
			}
		}
		return true, nil

	case ActionKeyPress, ActionKeyRelease:
		name, ok := ReplayKeyName(a.Key)
		if !ok {
			return false, nil
		}
		if a.Kind == ActionKeyPress {
			return true, p.sink.PressKey(name)
		}
		return true, p.sink.ReleaseKey(name)
	}
	return false, nil
}

func (p *Player) stopped(pb *Playback) {
	p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackStopped})
	p.opts.logger.Info("playback stopped", "id", pb.ID)
}

func (p *Player) failed(pb *Playback, err *SinkError) {
	if !p.session.abortPlayback(pb) {
		// Stopped or superseded while the sink call was in flight.
		p.stopped(pb)
		return
	}
	p.opts.reporter.Report(feedback.Message{Kind: feedback.KindPlaybackFailed, Err: err})
	p.opts.logger.Error("playback halted", "id", pb.ID, "error", err)
}
