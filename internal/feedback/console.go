package feedback

import (
	"io"

	"github.com/fatih/color"
)

// Console prints messages to a writer, one per line.
type Console struct {
	w      io.Writer
	info   *color.Color
	notice *color.Color
	err    *color.Color
	stamp  *color.Color
	clock  bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithColor forces colour output on or off.
// By default colour follows the terminal detection of the color package.
func WithColor(enabled bool) ConsoleOption {
	return func(c *Console) {
		for _, col := range []*color.Color{c.info, c.notice, c.err, c.stamp} {
			if enabled {
				col.EnableColor()
			} else {
				col.DisableColor()
			}
		}
	}
}

// WithTimestamps prefixes each line with the message time.
func WithTimestamps() ConsoleOption {
	return func(c *Console) {
		c.clock = true
	}
}

// NewConsole creates a console printer writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	c := &Console{
		w:      w,
		info:   color.New(color.FgGreen),
		notice: color.New(color.FgYellow),
		err:    color.New(color.FgRed, color.Bold),
		stamp:  color.New(color.FgHiBlack),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Observe prints msg. It satisfies Observer.
func (c *Console) Observe(msg Message) {
	if c.clock {
		c.stamp.Fprint(c.w, msg.Time.Format("15:04:05.000 "))
	}

	switch msg.Severity() {
	case SeverityError:
		c.err.Fprintln(c.w, msg.Text())
	case SeverityNotice:
		c.notice.Fprintln(c.w, msg.Text())
	default:
		c.info.Fprintln(c.w, msg.Text())
	}
}
