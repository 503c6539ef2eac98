package macro

import (
	"time"

	"github.com/dshills/macrorec/internal/input"
)

// DefaultPollInterval is how often a paused scheduler re-checks the session
// when no transition wakes it first.
const DefaultPollInterval = 50 * time.Millisecond

type options struct {
	reporter Reporter
	logger   Logger
	poll     time.Duration
	policy   SinkErrorPolicy
	bindings Bindings
	metrics  *input.Metrics
}

func defaultOptions() options {
	return options{
		reporter: nopReporter{},
		logger:   nopLogger{},
		poll:     DefaultPollInterval,
		policy:   PolicyHalt,
		bindings: DefaultBindings(),
	}
}

// Option configures a Player or a Recorder.
type Option func(*options)

// WithReporter sets where user-facing feedback is sent.
func WithReporter(r Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithPollInterval sets the paused re-check interval of the scheduler.
// Non-positive values keep the default.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.poll = d
		}
	}
}

// WithSinkErrorPolicy sets how the scheduler reacts to sink failures.
func WithSinkErrorPolicy(p SinkErrorPolicy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithBindings sets the initial control key bindings of a Recorder.
func WithBindings(b Bindings) Option {
	return func(o *options) {
		o.bindings = b
	}
}

// WithMetrics sets the metrics updated by a Recorder for every event.
func WithMetrics(m *input.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}
