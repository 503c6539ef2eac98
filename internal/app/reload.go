package app

import (
	"github.com/dshills/macrorec/internal/config"
)

// reload re-reads the configuration file and applies the settings that can
// change at runtime: hotkeys, the log level and desktop notifications.
// Invalid files are logged and the running configuration stays in effect.
func (app *Application) reload() {
	log := app.logger.WithComponent("config")

	cfg, err := config.Load(app.opts.ConfigPath, app.opts.ConfigOptions...)
	if err != nil {
		log.Warn("reload ignored", "path", app.opts.ConfigPath, "error", err)
		return
	}

	bindings, err := cfg.Bindings()
	if err == nil {
		err = app.recorder.SetBindings(bindings)
	}
	if err != nil {
		log.Warn("reload ignored", "path", app.opts.ConfigPath, "error", err)
		return
	}

	if app.opts.LogLevel == "" && !app.opts.Debug {
		if level := ParseLogLevel(cfg.Logging.Level); level != app.logger.Level() {
			app.logger.SetLevel(level)
			log.Info("log level changed", "level", level)
		}
	}

	app.mu.Lock()
	prev := app.config
	if cfg.Feedback.Desktop != prev.Feedback.Desktop {
		app.setDesktop(cfg.Feedback.Desktop)
		log.Info("desktop notifications changed", "enabled", cfg.Feedback.Desktop)
	}
	// Playback and console settings apply from the next start of the process
	desktop := cfg.Feedback.Desktop
	cfg.Playback = prev.Playback
	cfg.Feedback = prev.Feedback
	cfg.Feedback.Desktop = desktop
	app.config = cfg
	app.mu.Unlock()

	log.Info("configuration reloaded",
		"record", bindings.StartRecord, "stop", bindings.Stop,
		"loop", bindings.ToggleLoop, "play_pause", bindings.PlayPause)
}
