package macro

import (
	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

// Sink injects synthetic input into the operating system.
// Every call blocks until the injection completes and may fail.
type Sink interface {
	// MoveTo moves the pointer to an absolute screen position.
	MoveTo(x, y int) error

	// PressButton presses a pointer button.
	PressButton(b mouse.Button) error

	// ReleaseButton releases a pointer button.
	ReleaseButton(b mouse.Button) error

	// PressKey presses the key with the given replay name.
	PressKey(name string) error

	// ReleaseKey releases the key with the given replay name.
	ReleaseKey(name string) error

	// Scroll turns the wheel by amount along one axis.
	Scroll(amount int, axis mouse.Axis) error
}

// replayKeys is the fixed set of keys that can be replayed.
// Names follow the injector's key naming.
var replayKeys = map[key.Key]string{
	key.Key0: "0",
	key.Key1: "1",
	key.Key2: "2",
	key.Key3: "3",
	key.Key4: "4",
	key.Key5: "5",
	key.Key6: "6",
	key.Key7: "7",
	key.Key8: "8",
	key.Key9: "9",

	key.KeyA: "a",
	key.KeyB: "b",
	key.KeyC: "c",
	key.KeyD: "d",
	key.KeyE: "e",
	key.KeyF: "f",
	key.KeyG: "g",
	key.KeyH: "h",
	key.KeyI: "i",
	key.KeyJ: "j",
	key.KeyK: "k",
	key.KeyL: "l",
	key.KeyM: "m",
	key.KeyN: "n",
	key.KeyO: "o",
	key.KeyP: "p",
	key.KeyQ: "q",
	key.KeyR: "r",
	key.KeyS: "s",
	key.KeyT: "t",
	key.KeyU: "u",
	key.KeyV: "v",
	key.KeyW: "w",
	key.KeyX: "x",
	key.KeyY: "y",
	key.KeyZ: "z",

	key.KeyLeftShift:    "lshift",
	key.KeyRightShift:   "rshift",
	key.KeyLeftControl:  "lctrl",
	key.KeyRightControl: "rctrl",

	key.KeySpace:     "space",
	key.KeyEnter:     "enter",
	key.KeyBackspace: "backspace",
	key.KeyTab:       "tab",
	key.KeyEscape:    "esc",

	key.KeyUp:    "up",
	key.KeyDown:  "down",
	key.KeyLeft:  "left",
	key.KeyRight: "right",
}

// ReplayKeyName returns the injector name for k.
// Returns false for keys outside the replayable set.
func ReplayKeyName(k key.Key) (string, bool) {
	name, ok := replayKeys[k]
	return name, ok
}

// IsReplayButton returns true for buttons the injector can press.
func IsReplayButton(b mouse.Button) bool {
	return b == mouse.ButtonLeft || b == mouse.ButtonMiddle || b == mouse.ButtonRight
}
