package listener

import (
	hook "github.com/robotn/gohook"

	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

// Wheel directions reported by the hook.
const (
	wheelVertical   = 3
	wheelHorizontal = 4
)

// Translate converts a hook event into a raw input event stamped with the
// hook's time, or the current time when the hook reports none.
// Returns false for events that carry no input, such as typed characters
// (reported in addition to the key press) and click summaries.
func Translate(ev hook.Event) (input.RawEvent, bool) {
	var raw input.RawEvent

	switch ev.Kind {
	case hook.KeyHold:
		raw = input.NewKeyEvent(key.FromScanCode(ev.Keycode), true)
	case hook.KeyUp:
		raw = input.NewKeyEvent(key.FromScanCode(ev.Keycode), false)
	case hook.MouseMove, hook.MouseDrag:
		raw = input.NewMoveEvent(int(ev.X), int(ev.Y))
	case hook.MouseHold:
		raw = input.NewButtonEvent(mouse.ButtonFromCode(ev.Button), true)
	case hook.MouseDown:
		raw = input.NewButtonEvent(mouse.ButtonFromCode(ev.Button), false)
	case hook.MouseWheel:
		// The hook reports positive rotation for scrolling down.
		switch ev.Direction {
		case wheelHorizontal:
			raw = input.NewWheelEvent(int(ev.Rotation), 0)
		default:
			raw = input.NewWheelEvent(0, -int(ev.Rotation))
		}
		if raw.Wheel.IsZero() {
			return input.RawEvent{}, false
		}
	default:
		return input.RawEvent{}, false
	}

	if !ev.When.IsZero() {
		raw.Time = ev.When
	}
	return raw, true
}
