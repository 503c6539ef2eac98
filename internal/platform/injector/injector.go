// Package injector replays synthesized input through robotgo.
package injector

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"

	"github.com/dshills/macrorec/internal/input/macro"
	"github.com/dshills/macrorec/internal/input/mouse"
)

// ErrUnsupportedButton is returned for buttons the injector cannot press.
var ErrUnsupportedButton = errors.New("unsupported button")

// backend is the subset of robotgo used for injection.
type backend struct {
	move      func(x, y int)
	toggle    func(button, direction string) error
	keyToggle func(name, direction string) error
	scroll    func(x, y int)
}

func robotgoBackend() backend {
	return backend{
		move: func(x, y int) { robotgo.Move(x, y) },
		toggle: func(button, direction string) error {
			if direction == "" {
				return robotgo.Toggle(button)
			}
			return robotgo.Toggle(button, direction)
		},
		keyToggle: func(name, direction string) error {
			if direction == "" {
				return robotgo.KeyToggle(name)
			}
			return robotgo.KeyToggle(name, direction)
		},
		scroll: func(x, y int) { robotgo.Scroll(x, y) },
	}
}

// Injector implements macro.Sink on top of robotgo.
// Calls are serialized.
type Injector struct {
	mu sync.Mutex
	b  backend
}

// New creates an injector driving the real desktop.
func New() *Injector {
	return &Injector{b: robotgoBackend()}
}

var buttonNames = map[mouse.Button]string{
	mouse.ButtonLeft:   "left",
	mouse.ButtonMiddle: "center",
	mouse.ButtonRight:  "right",
}

// MoveTo moves the pointer to absolute screen coordinates.
func (inj *Injector) MoveTo(x, y int) error {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	inj.b.move(x, y)
	return nil
}

// PressButton presses a mouse button.
func (inj *Injector) PressButton(b mouse.Button) error {
	return inj.button(b, "")
}

// ReleaseButton releases a mouse button.
func (inj *Injector) ReleaseButton(b mouse.Button) error {
	return inj.button(b, "up")
}

func (inj *Injector) button(b mouse.Button, direction string) error {
	name, ok := buttonNames[b]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedButton, b)
	}
	inj.mu.Lock()
	defer inj.mu.Unlock()
	if err := inj.b.toggle(name, direction); err != nil {
		return fmt.Errorf("toggle %s button: %w", name, err)
	}
	return nil
}

// PressKey presses the key with the given robotgo key name.
func (inj *Injector) PressKey(name string) error {
	return inj.key(name, "")
}

// ReleaseKey releases the key with the given robotgo key name.
func (inj *Injector) ReleaseKey(name string) error {
	return inj.key(name, "up")
}

func (inj *Injector) key(name, direction string) error {
	inj.mu.Lock()
	defer inj.mu.Unlock()
	if err := inj.b.keyToggle(name, direction); err != nil {
		return fmt.Errorf("toggle key %q: %w", name, err)
	}
	return nil
}

// Scroll scrolls the wheel by amount along axis.
// Positive amounts scroll up or right.
func (inj *Injector) Scroll(amount int, axis mouse.Axis) error {
	if amount == 0 {
		return nil
	}
	inj.mu.Lock()
	defer inj.mu.Unlock()
	switch axis {
	case mouse.AxisHorizontal:
		inj.b.scroll(amount, 0)
	default:
		inj.b.scroll(0, amount)
	}
	return nil
}

var _ macro.Sink = (*Injector)(nil)
