package app

import (
	"github.com/fatih/color"

	"github.com/dshills/macrorec/internal/config"
	"github.com/dshills/macrorec/internal/config/watcher"
	"github.com/dshills/macrorec/internal/feedback"
	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/macro"
	"github.com/dshills/macrorec/internal/platform/injector"
	"github.com/dshills/macrorec/internal/platform/listener"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,   // 1. Configuration
		b.initLogger,   // 2. Logger
		b.initFeedback, // 3. Feedback notifier and observers
		b.initPlatform, // 4. Listener and injector
		b.initMacro,    // 5. Session, player and recorder
		b.initWatcher,  // 6. Configuration reload
	}

	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads the configuration file and environment overrides.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath, b.opts.ConfigOptions...)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if b.opts.Loop {
		cfg.Playback.Loop = true
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}
	if b.opts.Debug {
		cfg.Logging.Level = "debug"
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger creates the application logger.
func (b *bootstrapper) initLogger() error {
	cfg := DefaultLoggerConfig()
	cfg.Level = ParseLogLevel(b.app.config.Logging.Level)
	if b.opts.LogOutput != nil {
		cfg.Output = b.opts.LogOutput
	}
	b.app.logger = NewLogger(cfg)

	for _, path := range b.app.config.Unknown {
		b.app.logger.Warn("unknown setting ignored", "setting", path)
	}

	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initFeedback creates the notifier and subscribes the observers.
func (b *bootstrapper) initFeedback() error {
	fc := b.app.config.Feedback

	b.app.notifier = feedback.New(feedback.WithAsync(fc.AsyncBuffer))

	out := b.opts.Output
	if out == nil {
		out = color.Output
	}
	var consoleOpts []feedback.ConsoleOption
	switch fc.Color {
	case "always":
		consoleOpts = append(consoleOpts, feedback.WithColor(true))
	case "never":
		consoleOpts = append(consoleOpts, feedback.WithColor(false))
	}
	if fc.Timestamps {
		consoleOpts = append(consoleOpts, feedback.WithTimestamps())
	}
	b.app.notifier.Subscribe(feedback.NewConsole(out, consoleOpts...).Observe)

	if b.opts.Debug {
		b.app.notifier.Subscribe(feedback.LogObserver(b.app.logger.WithComponent("feedback")))
	}

	b.app.setDesktop(fc.Desktop)

	b.initOrder = append(b.initOrder, "feedback")
	return nil
}

// initPlatform selects the input source and sink.
func (b *bootstrapper) initPlatform() error {
	b.app.source = b.opts.Source
	if b.app.source == nil {
		b.app.source = listener.New()
	}
	b.app.sink = b.opts.Sink
	if b.app.sink == nil {
		b.app.sink = injector.New()
	}
	b.initOrder = append(b.initOrder, "platform")
	return nil
}

// initMacro creates the session, the player and the capture controller.
func (b *bootstrapper) initMacro() error {
	cfg := b.app.config

	bindings, err := cfg.Bindings()
	if err != nil {
		return &InitError{Component: "hotkeys", Err: err}
	}

	b.app.metrics = input.NewMetrics()
	b.app.session = macro.NewSession(macro.WithLooping(cfg.Playback.Loop))

	shared := []macro.Option{
		macro.WithReporter(b.app.notifier),
		macro.WithPollInterval(cfg.Playback.PausePoll),
		macro.WithSinkErrorPolicy(cfg.SinkErrorPolicy()),
	}

	b.app.player, err = macro.NewPlayer(b.app.session, b.app.sink,
		append(shared, macro.WithLogger(b.app.logger.WithComponent("player")))...)
	if err != nil {
		return &InitError{Component: "player", Err: err}
	}

	b.app.recorder, err = macro.NewRecorder(b.app.session, b.app.player,
		append(shared,
			macro.WithLogger(b.app.logger.WithComponent("recorder")),
			macro.WithBindings(bindings),
			macro.WithMetrics(b.app.metrics),
		)...)
	if err != nil {
		return &InitError{Component: "recorder", Err: err}
	}

	b.initOrder = append(b.initOrder, "macro")
	return nil
}

// initWatcher starts watching the configuration file when requested.
func (b *bootstrapper) initWatcher() error {
	if !b.opts.Watch || b.opts.ConfigPath == "" {
		return nil
	}

	log := b.app.logger.WithComponent("watcher")
	w, err := watcher.New(b.opts.ConfigPath, watcher.WithErrorHandler(func(err error) {
		log.Warn("watch error", "error", err)
	}))
	if err != nil {
		// Reload is optional; keep running without it
		log.Warn("config reload disabled", "path", b.opts.ConfigPath, "error", err)
		return nil
	}
	w.OnChange(func(ev watcher.Event) {
		if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
			return
		}
		b.app.reload()
	})

	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup performs cleanup in reverse initialization order.
// Called when bootstrap fails partway through.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		b.cleanupComponent(b.initOrder[i])
	}
}

// cleanupComponent cleans up a single component.
func (b *bootstrapper) cleanupComponent(component string) {
	switch component {
	case "watcher":
		if b.app.watcher != nil {
			_ = b.app.watcher.Close()
			b.app.watcher = nil
		}
	case "macro":
		b.app.recorder = nil
		b.app.player = nil
		b.app.session = nil
	case "platform":
		b.app.source = nil
		b.app.sink = nil
	case "feedback":
		if b.app.notifier != nil {
			b.app.notifier.Close()
			b.app.notifier = nil
			b.app.desktop = nil
		}
	case "logger":
		b.app.logger = nil
	case "config":
		b.app.config = nil
	}
}

// setDesktop subscribes or removes the desktop notification observer.
func (app *Application) setDesktop(enabled bool) {
	if enabled == (app.desktop != nil) {
		return
	}
	if !enabled {
		app.desktop.Unsubscribe()
		app.desktop = nil
		return
	}

	log := app.logger.WithComponent("desktop")
	app.desktop = app.notifier.SubscribeKinds(
		feedback.DesktopObserver("macrorec", app.opts.Notify, func(err error) {
			log.Warn("notification failed", "error", err)
		}),
		feedback.DesktopKinds...,
	)
}
