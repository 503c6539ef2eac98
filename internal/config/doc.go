// Package config provides configuration for macrorec.
//
// Configuration is read from an optional TOML or YAML file, selected by
// extension, and then overridden by MACROREC_* environment variables:
//
//	[hotkeys]
//	start_record = "F4"
//	stop         = "F2"
//	toggle_loop  = "F3"
//	play_pause   = "F1"
//
//	[playback]
//	pause_poll    = "50ms"
//	on_sink_error = "halt"   # or "skip"
//	loop          = false
//
//	[logging]
//	level = "info"
//
//	[feedback]
//	color        = "auto"    # "always", "never"
//	desktop      = false
//	timestamps   = false
//	async_buffer = 64
//
// A missing file yields the defaults. Unknown keys are collected in
// Config.Unknown rather than rejected.
//
// The watcher subpackage reports changes to the file so hotkeys can be
// rebound without a restart.
package config
