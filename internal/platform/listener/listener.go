// Package listener captures system-wide keyboard and pointer input through
// the global hook provided by gohook.
//
// Listener implements input.Source. Hook events are translated into
// input.RawEvent values and delivered in order on a single channel.
package listener

import (
	"context"
	"fmt"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/dshills/macrorec/internal/input"
)

const (
	// DefaultBuffer is the capacity of the delivered event channel.
	DefaultBuffer = 256

	// DefaultAttachTimeout bounds how long Start waits for the hook to
	// report that it is enabled.
	DefaultAttachTimeout = 2 * time.Second
)

// Listener is an input.Source backed by the global input hook.
type Listener struct {
	mu      sync.Mutex
	running bool
	out     chan input.RawEvent
	stop    chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	buffer        int
	attachTimeout time.Duration
	start         func() chan hook.Event
	end           func()
}

// Option configures a Listener.
type Option func(*Listener)

// WithBuffer sets the capacity of the event channel.
func WithBuffer(n int) Option {
	return func(l *Listener) {
		if n >= 0 {
			l.buffer = n
		}
	}
}

// WithAttachTimeout sets how long Start waits for the hook to attach.
func WithAttachTimeout(d time.Duration) Option {
	return func(l *Listener) {
		if d > 0 {
			l.attachTimeout = d
		}
	}
}

// New creates a listener. Nothing is hooked until Start.
func New(opts ...Option) *Listener {
	l := &Listener{
		buffer:        DefaultBuffer,
		attachTimeout: DefaultAttachTimeout,
		start:         hook.Start,
		end:           hook.End,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start attaches the hook and begins delivering events. It returns
// input.ErrSourceUnavailable if the hook does not report itself enabled
// within the attach timeout.
// The channel is closed after Stop or when ctx is cancelled.
func (l *Listener) Start(ctx context.Context) (<-chan input.RawEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil, input.ErrSourceRunning
	}

	events := l.start()
	if events == nil {
		return nil, input.ErrSourceUnavailable
	}
	if err := l.awaitEnabled(ctx, events); err != nil {
		l.end()
		return nil, err
	}

	l.out = make(chan input.RawEvent, l.buffer)
	l.stop = make(chan struct{})
	l.done = make(chan struct{})
	l.running = true

	l.wg.Add(1)
	go l.pump(ctx, events, l.out, l.stop)

	return l.out, nil
}

// awaitEnabled waits for the hook's enabled event. Events that arrive
// before it are dropped.
func (l *Listener) awaitEnabled(ctx context.Context, events <-chan hook.Event) error {
	timer := time.NewTimer(l.attachTimeout)
	defer timer.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return input.ErrSourceUnavailable
			}
			if ev.Kind == hook.HookEnabled {
				return nil
			}
		case <-timer.C:
			return fmt.Errorf("%w: hook not enabled after %v", input.ErrSourceUnavailable, l.attachTimeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop detaches the hook and closes the event channel. Every caller
// returns only after the hook has been detached.
// Safe to call when not running.
func (l *Listener) Stop() error {
	l.mu.Lock()
	done := l.done
	if !l.running {
		l.mu.Unlock()
		if done != nil {
			<-done
		}
		return nil
	}
	l.running = false
	close(l.stop)
	l.mu.Unlock()

	l.end()
	l.wg.Wait()
	close(done)
	return nil
}

func (l *Listener) pump(ctx context.Context, events <-chan hook.Event, out chan<- input.RawEvent, stop <-chan struct{}) {
	defer l.wg.Done()
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			go l.Stop()
			return
		case <-stop:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			raw, ok := Translate(ev)
			if !ok {
				continue
			}
			select {
			case out <- raw:
			case <-stop:
				return
			case <-ctx.Done():
				go l.Stop()
				return
			}
		}
	}
}

// Ensure Listener implements input.Source.
var _ input.Source = (*Listener)(nil)
