package input

import (
	"fmt"
	"time"

	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

// Kind identifies the type of a raw input event.
type Kind uint8

const (
	// KindNone indicates an event the source could not classify.
	KindNone Kind = iota
	// KindKeyPress indicates a key went down.
	KindKeyPress
	// KindKeyRelease indicates a key went up.
	KindKeyRelease
	// KindPointerMove indicates the pointer moved.
	KindPointerMove
	// KindButtonPress indicates a pointer button went down.
	KindButtonPress
	// KindButtonRelease indicates a pointer button went up.
	KindButtonRelease
	// KindWheel indicates the scroll wheel turned.
	KindWheel
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindKeyPress:
		return "key-press"
	case KindKeyRelease:
		return "key-release"
	case KindPointerMove:
		return "pointer-move"
	case KindButtonPress:
		return "button-press"
	case KindButtonRelease:
		return "button-release"
	case KindWheel:
		return "wheel"
	default:
		return "none"
	}
}

// IsKey returns true for key press and release events.
func (k Kind) IsKey() bool {
	return k == KindKeyPress || k == KindKeyRelease
}

// IsPointer returns true for pointer, button and wheel events.
func (k Kind) IsPointer() bool {
	return k >= KindPointerMove && k <= KindWheel
}

// RawEvent is a single event delivered by a Source.
type RawEvent struct {
	// Kind is the type of event.
	Kind Kind

	// Key is the key for key events.
	Key key.Key

	// Position is the absolute pointer position for pointer events.
	Position mouse.Position

	// Button is the button for button events.
	Button mouse.Button

	// Wheel is the scroll delta for wheel events.
	Wheel mouse.Wheel

	// Time is when the source observed the event.
	Time time.Time
}

// String returns a compact description of the event.
func (e RawEvent) String() string {
	switch e.Kind {
	case KindKeyPress, KindKeyRelease:
		return fmt.Sprintf("%s %s", e.Kind, e.Key)
	case KindPointerMove:
		return fmt.Sprintf("%s %s", e.Kind, e.Position)
	case KindButtonPress, KindButtonRelease:
		return fmt.Sprintf("%s %s", e.Kind, e.Button)
	case KindWheel:
		return fmt.Sprintf("%s dx=%d dy=%d", e.Kind, e.Wheel.DX, e.Wheel.DY)
	default:
		return e.Kind.String()
	}
}

// NewKeyEvent creates a key press or release event with the current time.
func NewKeyEvent(k key.Key, pressed bool) RawEvent {
	kind := KindKeyRelease
	if pressed {
		kind = KindKeyPress
	}
	return RawEvent{Kind: kind, Key: k, Time: time.Now()}
}

// NewMoveEvent creates a pointer move event with the current time.
func NewMoveEvent(x, y int) RawEvent {
	return RawEvent{Kind: KindPointerMove, Position: mouse.Position{X: x, Y: y}, Time: time.Now()}
}

// NewButtonEvent creates a button press or release event with the current time.
func NewButtonEvent(b mouse.Button, pressed bool) RawEvent {
	kind := KindButtonRelease
	if pressed {
		kind = KindButtonPress
	}
	return RawEvent{Kind: kind, Button: b, Time: time.Now()}
}

// NewWheelEvent creates a wheel event with the current time.
func NewWheelEvent(dx, dy int) RawEvent {
	return RawEvent{Kind: KindWheel, Wheel: mouse.Wheel{DX: dx, DY: dy}, Time: time.Now()}
}
