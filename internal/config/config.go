package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dshills/macrorec/internal/config/loader"
	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/macro"
)

// Poll interval bounds.
const (
	MinPausePoll = time.Millisecond
	MaxPausePoll = time.Second
)

// Config is the complete macrorec configuration.
type Config struct {
	Hotkeys  HotkeysConfig
	Playback PlaybackConfig
	Logging  LoggingConfig
	Feedback FeedbackConfig

	// Path is the file the configuration was read from.
	Path string

	// Unknown lists setting paths found in the sources but not recognized.
	Unknown []string
}

// HotkeysConfig names the four control keys.
type HotkeysConfig struct {
	StartRecord string
	Stop        string
	ToggleLoop  string
	PlayPause   string
}

// PlaybackConfig configures the scheduler.
type PlaybackConfig struct {
	PausePoll   time.Duration
	OnSinkError string
	Loop        bool
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string
}

// FeedbackConfig configures user-facing messages.
type FeedbackConfig struct {
	// Color is "auto", "always" or "never".
	Color       string
	Desktop     bool
	Timestamps  bool
	AsyncBuffer int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Hotkeys: HotkeysConfig{
			StartRecord: "F4",
			Stop:        "F2",
			ToggleLoop:  "F3",
			PlayPause:   "F1",
		},
		Playback: PlaybackConfig{
			PausePoll:   macro.DefaultPollInterval,
			OnSinkError: "halt",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Feedback: FeedbackConfig{
			Color:       "auto",
			AsyncBuffer: 64,
		},
	}
}

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	fs  loader.FileSystem
	env loader.Loader
}

// WithFS reads the configuration file from fsys.
func WithFS(fsys loader.FileSystem) Option {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnv replaces the environment source. A nil loader disables it.
func WithEnv(env loader.Loader) Option {
	return func(o *loadOptions) {
		o.env = env
	}
}

// Load reads the file at path, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string, opts ...Option) (*Config, error) {
	o := loadOptions{
		fs:  loader.DefaultFS(),
		env: loader.NewEnvLoader(loader.EnvPrefix),
	}
	for _, opt := range opts {
		opt(&o)
	}

	var merged map[string]any
	if path != "" {
		fl, err := loader.ForFile(o.fs, path)
		if err != nil {
			return nil, err
		}
		fileCfg, err := fl.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, fileCfg)
	}

	if o.env != nil {
		envCfg, err := o.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, envCfg)
	}

	cfg, err := FromMap(merged)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap decodes a nested settings map over the defaults.
// It checks types only; call Validate for value checks.
func FromMap(m map[string]any) (*Config, error) {
	cfg := Default()
	d := decoder{}

	for section, raw := range m {
		values, ok := raw.(map[string]any)
		if !ok {
			d.errs = append(d.errs, mismatch(section, "table", raw))
			continue
		}

		switch section {
		case "hotkeys":
			d.section(section, values, map[string]func(string, any){
				"start_record": d.keyName(&cfg.Hotkeys.StartRecord),
				"stop":         d.keyName(&cfg.Hotkeys.Stop),
				"toggle_loop":  d.keyName(&cfg.Hotkeys.ToggleLoop),
				"play_pause":   d.keyName(&cfg.Hotkeys.PlayPause),
			})
		case "playback":
			d.section(section, values, map[string]func(string, any){
				"pause_poll":    d.duration(&cfg.Playback.PausePoll),
				"on_sink_error": d.str(&cfg.Playback.OnSinkError),
				"loop":          d.boolean(&cfg.Playback.Loop),
			})
		case "logging":
			d.section(section, values, map[string]func(string, any){
				"level": d.str(&cfg.Logging.Level),
			})
		case "feedback":
			d.section(section, values, map[string]func(string, any){
				"color":        d.str(&cfg.Feedback.Color),
				"desktop":      d.boolean(&cfg.Feedback.Desktop),
				"timestamps":   d.boolean(&cfg.Feedback.Timestamps),
				"async_buffer": d.integer(&cfg.Feedback.AsyncBuffer),
			})
		default:
			d.unknown = append(d.unknown, section)
		}
	}

	if len(d.errs) > 0 {
		return nil, errors.Join(d.errs...)
	}
	slices.Sort(d.unknown)
	cfg.Unknown = d.unknown
	return cfg, nil
}

// Validate checks every setting and returns all failures joined.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}

	if p := c.Playback.PausePoll; p < MinPausePoll || p > MaxPausePoll {
		errs = append(errs, invalid("playback.pause_poll",
			fmt.Sprintf("must be between %v and %v", MinPausePoll, MaxPausePoll), p))
	}
	if _, err := macro.ParseSinkErrorPolicy(c.Playback.OnSinkError); err != nil {
		errs = append(errs, invalid("playback.on_sink_error", "must be halt or skip", c.Playback.OnSinkError))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, invalid("logging.level", "must be debug, info, warn or error", c.Logging.Level))
	}

	switch c.Feedback.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, invalid("feedback.color", "must be auto, always or never", c.Feedback.Color))
	}
	if c.Feedback.AsyncBuffer < 0 {
		errs = append(errs, invalid("feedback.async_buffer", "must not be negative", c.Feedback.AsyncBuffer))
	}

	return errors.Join(errs...)
}

// Bindings parses the hotkeys into control key bindings.
func (c *Config) Bindings() (macro.Bindings, error) {
	var b macro.Bindings
	for _, h := range []struct {
		path string
		name string
		dst  *key.Key
	}{
		{"hotkeys.start_record", c.Hotkeys.StartRecord, &b.StartRecord},
		{"hotkeys.stop", c.Hotkeys.Stop, &b.Stop},
		{"hotkeys.toggle_loop", c.Hotkeys.ToggleLoop, &b.ToggleLoop},
		{"hotkeys.play_pause", c.Hotkeys.PlayPause, &b.PlayPause},
	} {
		k, err := key.Parse(h.name)
		if err != nil {
			return macro.Bindings{}, invalid(h.path, err.Error(), h.name)
		}
		*h.dst = k
	}

	if err := b.Validate(); err != nil {
		return macro.Bindings{}, invalid("hotkeys", err.Error(), c.Hotkeys)
	}
	return b, nil
}

// SinkErrorPolicy returns the parsed playback.on_sink_error value.
func (c *Config) SinkErrorPolicy() macro.SinkErrorPolicy {
	p, _ := macro.ParseSinkErrorPolicy(c.Playback.OnSinkError)
	return p
}

// decoder assigns map values to typed fields, collecting errors.
type decoder struct {
	errs    []error
	unknown []string
}

func (d *decoder) section(name string, values map[string]any, fields map[string]func(string, any)) {
	for k, v := range values {
		path := name + "." + k
		set, ok := fields[k]
		if !ok {
			d.unknown = append(d.unknown, path)
			continue
		}
		set(path, v)
	}
}

func (d *decoder) str(dst *string) func(string, any) {
	return func(path string, v any) {
		s, ok := v.(string)
		if !ok {
			d.errs = append(d.errs, mismatch(path, "string", v))
			return
		}
		*dst = s
	}
}

// keyName accepts strings and bare digits, which env and YAML decode as numbers.
func (d *decoder) keyName(dst *string) func(string, any) {
	return func(path string, v any) {
		switch x := v.(type) {
		case string:
			*dst = x
		case int, int64, uint64:
			*dst = fmt.Sprint(x)
		default:
			d.errs = append(d.errs, mismatch(path, "key name", v))
		}
	}
}

func (d *decoder) boolean(dst *bool) func(string, any) {
	return func(path string, v any) {
		b, ok := v.(bool)
		if !ok {
			d.errs = append(d.errs, mismatch(path, "boolean", v))
			return
		}
		*dst = b
	}
}

func (d *decoder) integer(dst *int) func(string, any) {
	return func(path string, v any) {
		switch x := v.(type) {
		case int:
			*dst = x
		case int64:
			*dst = int(x)
		case uint64:
			*dst = int(x)
		default:
			d.errs = append(d.errs, mismatch(path, "integer", v))
		}
	}
}

// duration accepts Go duration strings and integer milliseconds.
func (d *decoder) duration(dst *time.Duration) func(string, any) {
	return func(path string, v any) {
		switch x := v.(type) {
		case time.Duration:
			*dst = x
		case string:
			parsed, err := time.ParseDuration(x)
			if err != nil {
				d.errs = append(d.errs, invalid(path, "not a duration", x))
				return
			}
			*dst = parsed
		case int:
			*dst = time.Duration(x) * time.Millisecond
		case int64:
			*dst = time.Duration(x) * time.Millisecond
		default:
			d.errs = append(d.errs, mismatch(path, "duration", v))
		}
	}
}
