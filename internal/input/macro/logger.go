package macro

import "github.com/dshills/macrorec/internal/feedback"

// Logger is the logging surface used by this package.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Reporter receives user-facing feedback.
type Reporter interface {
	Report(msg feedback.Message)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type nopReporter struct{}

func (nopReporter) Report(feedback.Message) {}
