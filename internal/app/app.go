// Package app wires the input listener, the macro session and the
// injector together and manages the recorder's lifecycle.
package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/macrorec/internal/config"
	"github.com/dshills/macrorec/internal/config/watcher"
	"github.com/dshills/macrorec/internal/feedback"
	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/macro"
)

// DefaultShutdownTimeout bounds how long Run waits for playback to stop.
const DefaultShutdownTimeout = 5 * time.Second

// Application is the central coordinator for the recorder.
type Application struct {
	mu sync.RWMutex

	// Core infrastructure
	config  *config.Config
	logger  *Logger
	watcher *watcher.Watcher

	// Feedback
	notifier *feedback.Notifier
	desktop  *feedback.Subscription

	// Recording and playback
	session  *macro.Session
	player   *macro.Player
	recorder *macro.Recorder
	metrics  *input.Metrics

	// Platform adapters
	source input.Source
	sink   macro.Sink

	// State
	running atomic.Bool
	cancel  context.CancelFunc
	stopped chan struct{}
	closeMu sync.Once

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	// Empty means built-in defaults and environment overrides only.
	ConfigPath string

	// Debug enables debug mode with extra logging.
	Debug bool

	// LogLevel overrides logging.level when non-empty.
	LogLevel string

	// Loop starts with looping enabled.
	Loop bool

	// Watch reloads hotkeys when the configuration file changes.
	Watch bool

	// Output receives console feedback. Defaults to os.Stdout.
	Output io.Writer

	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer

	// Source overrides the system-wide listener.
	Source input.Source

	// Sink overrides the desktop injector.
	Sink macro.Sink

	// Notify overrides desktop notifications.
	Notify feedback.NotifyFunc

	// ConfigOptions are passed to config.Load on startup and reload.
	ConfigOptions []config.Option

	// ShutdownTimeout overrides DefaultShutdownTimeout.
	ShutdownTimeout time.Duration
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		stopped: make(chan struct{}),
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// Run attaches the listener and handles input until ctx is cancelled or
// Shutdown is called. Shutdown work runs before Run returns.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()

	events, err := app.source.Start(ctx)
	if err != nil {
		serr := app.shutdown()
		if errors.Is(err, context.Canceled) {
			return serr
		}
		return &InitError{Component: "listener", Err: err}
	}

	b := app.recorder.Bindings()
	app.logger.Info("listening",
		"record", b.StartRecord, "stop", b.Stop, "loop", b.ToggleLoop, "play_pause", b.PlayPause)

	err = app.recorder.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	if serr := app.shutdown(); err == nil {
		err = serr
	}
	return err
}

// Shutdown initiates graceful shutdown.
// A running Run returns after cleanup completes.
func (app *Application) Shutdown() {
	app.mu.RLock()
	cancel := app.cancel
	app.mu.RUnlock()

	if cancel != nil && app.running.Load() {
		cancel()
		return
	}
	app.shutdown()
}

// shutdown performs cleanup in reverse initialization order. Safe to call
// more than once.
func (app *Application) shutdown() error {
	var errs ErrorList

	app.closeMu.Do(func() {
		defer close(app.stopped)

		timeout := app.opts.ShutdownTimeout
		if timeout <= 0 {
			timeout = DefaultShutdownTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// 1. Stop playback
		if _, err := app.player.StopContext(ctx); err != nil {
			errs.Add(NewComponentError("player", "stop", errors.Join(ErrShutdownTimeout, err)))
		}

		// 2. Detach the listener
		if err := app.source.Stop(); err != nil {
			errs.Add(NewComponentError("listener", "stop", err))
		}

		// 3. Stop watching configuration
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				errs.Add(NewComponentError("watcher", "close", err))
			}
		}

		s := app.Summary()
		app.logger.Info("shutdown",
			"recorded", s.Input.RecordedEvents,
			"replayed", s.Playback.Replayed,
			"passes", s.Playback.Passes,
			"sink_errors", s.Playback.SinkErrors)

		// 4. Flush feedback
		app.notifier.Close()

		for _, err := range errs.Unwrap() {
			app.logger.Error("shutdown failed", "error", err)
		}
	})

	return errs.AsError()
}

// Done is closed once shutdown has completed.
func (app *Application) Done() <-chan struct{} {
	return app.stopped
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Session returns the recording session.
func (app *Application) Session() *macro.Session {
	return app.session
}

// Recorder returns the capture controller.
func (app *Application) Recorder() *macro.Recorder {
	return app.recorder
}

// Summary collects input and playback statistics.
type Summary struct {
	Input    input.MetricsSnapshot
	Playback macro.StatsSnapshot
}

// Summary returns the current statistics.
func (app *Application) Summary() Summary {
	return Summary{
		Input:    app.metrics.Snapshot(),
		Playback: app.player.Stats(),
	}
}
