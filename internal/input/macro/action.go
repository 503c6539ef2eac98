package macro

import (
	"fmt"

	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

// ActionKind tags the variant held by an Action.
type ActionKind uint8

const (
	// ActionNone is the zero Action and is never recorded.
	ActionNone ActionKind = iota
	// ActionMove moves the pointer to an absolute position.
	ActionMove
	// ActionButtonPress presses a pointer button.
	ActionButtonPress
	// ActionButtonRelease releases a pointer button.
	ActionButtonRelease
	// ActionWheel scrolls the wheel.
	ActionWheel
	// ActionKeyPress presses a key.
	ActionKeyPress
	// ActionKeyRelease releases a key.
	ActionKeyRelease
)

// String returns a string representation of the action kind.
func (k ActionKind) String() string {
	switch k {
	case ActionMove:
		return "pointer-move"
	case ActionButtonPress:
		return "button-press"
	case ActionButtonRelease:
		return "button-release"
	case ActionWheel:
		return "wheel"
	case ActionKeyPress:
		return "key-press"
	case ActionKeyRelease:
		return "key-release"
	default:
		return "none"
	}
}

// Action is one replayable input occurrence.
// Only the field matching Kind is meaningful.
type Action struct {
	Kind     ActionKind
	Position mouse.Position
	Button   mouse.Button
	Wheel    mouse.Wheel
	Key      key.Key
}

// MoveTo returns an absolute pointer move action.
func MoveTo(x, y int) Action {
	return Action{Kind: ActionMove, Position: mouse.Position{X: x, Y: y}}
}

// PressButton returns a button press action.
func PressButton(b mouse.Button) Action {
	return Action{Kind: ActionButtonPress, Button: b}
}

// ReleaseButton returns a button release action.
func ReleaseButton(b mouse.Button) Action {
	return Action{Kind: ActionButtonRelease, Button: b}
}

// Scroll returns a wheel action.
func Scroll(dx, dy int) Action {
	return Action{Kind: ActionWheel, Wheel: mouse.Wheel{DX: dx, DY: dy}}
}

// PressKey returns a key press action.
func PressKey(k key.Key) Action {
	return Action{Kind: ActionKeyPress, Key: k}
}

// ReleaseKey returns a key release action.
func ReleaseKey(k key.Key) Action {
	return Action{Kind: ActionKeyRelease, Key: k}
}

// String returns a compact description of the action.
func (a Action) String() string {
	switch a.Kind {
	case ActionMove:
		return fmt.Sprintf("%s %s", a.Kind, a.Position)
	case ActionButtonPress, ActionButtonRelease:
		return fmt.Sprintf("%s %s", a.Kind, a.Button)
	case ActionWheel:
		return fmt.Sprintf("%s dx=%d dy=%d", a.Kind, a.Wheel.DX, a.Wheel.DY)
	case ActionKeyPress, ActionKeyRelease:
		return fmt.Sprintf("%s %s", a.Kind, a.Key)
	default:
		return a.Kind.String()
	}
}

// ActionFromRaw converts a raw input event into an Action.
// Returns false for events that carry nothing replayable.
func ActionFromRaw(ev input.RawEvent) (Action, bool) {
	switch ev.Kind {
	case input.KindKeyPress:
		return PressKey(ev.Key), true
	case input.KindKeyRelease:
		return ReleaseKey(ev.Key), true
	case input.KindPointerMove:
		return MoveTo(ev.Position.X, ev.Position.Y), true
	case input.KindButtonPress:
		return PressButton(ev.Button), true
	case input.KindButtonRelease:
		return ReleaseButton(ev.Button), true
	case input.KindWheel:
		return Scroll(ev.Wheel.DX, ev.Wheel.DY), true
	default:
		return Action{}, false
	}
}
