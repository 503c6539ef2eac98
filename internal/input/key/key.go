package key

import (
	"fmt"
	"strconv"
	"strings"
)

// Key represents a keyboard key.
type Key uint16

const (
	// KeyNone represents no key or a key the listener could not identify.
	KeyNone Key = iota

	// Letter keys
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digit row keys
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Modifier keys
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftMeta
	KeyRightMeta

	// Special keys
	KeySpace
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyCapsLock
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	keyCount
)

var specialNames = map[Key]string{
	KeyNone:         "None",
	KeyLeftShift:    "LShift",
	KeyRightShift:   "RShift",
	KeyLeftControl:  "LCtrl",
	KeyRightControl: "RCtrl",
	KeyLeftAlt:      "LAlt",
	KeyRightAlt:     "RAlt",
	KeyLeftMeta:     "LMeta",
	KeyRightMeta:    "RMeta",
	KeySpace:        "Space",
	KeyEnter:        "Enter",
	KeyBackspace:    "Backspace",
	KeyTab:          "Tab",
	KeyEscape:       "Escape",
	KeyCapsLock:     "CapsLock",
	KeyDelete:       "Delete",
	KeyInsert:       "Insert",
	KeyHome:         "Home",
	KeyEnd:          "End",
	KeyPageUp:       "PageUp",
	KeyPageDown:     "PageDown",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch {
	case k.IsLetter():
		return string(rune('A' + (k - KeyA)))
	case k.IsDigit():
		return string(rune('0' + (k - Key0)))
	case k.IsFunctionKey():
		return fmt.Sprintf("F%d", k-KeyF1+1)
	}
	if name, ok := specialNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}

// IsValid returns true if k is a known key other than KeyNone.
func (k Key) IsValid() bool {
	return k > KeyNone && k < keyCount
}

// IsLetter returns true if this is a letter key (A-Z).
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true if this is a digit row key (0-9).
func (k Key) IsDigit() bool {
	return k >= Key0 && k <= Key9
}

// IsFunctionKey returns true if this is a function key (F1-F12).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// keyNameMap maps key names (lowercase) to Key values.
// Letters, digits and function keys are resolved separately.
var keyNameMap = map[string]Key{
	"none":         KeyNone,
	"shift":        KeyLeftShift,
	"lshift":       KeyLeftShift,
	"shiftleft":    KeyLeftShift,
	"rshift":       KeyRightShift,
	"shiftright":   KeyRightShift,
	"ctrl":         KeyLeftControl,
	"control":      KeyLeftControl,
	"lctrl":        KeyLeftControl,
	"controlleft":  KeyLeftControl,
	"rctrl":        KeyRightControl,
	"controlright": KeyRightControl,
	"alt":          KeyLeftAlt,
	"lalt":         KeyLeftAlt,
	"ralt":         KeyRightAlt,
	"meta":         KeyLeftMeta,
	"cmd":          KeyLeftMeta,
	"super":        KeyLeftMeta,
	"lmeta":        KeyLeftMeta,
	"rmeta":        KeyRightMeta,
	"space":        KeySpace,
	"enter":        KeyEnter,
	"return":       KeyEnter,
	"cr":           KeyEnter,
	"backspace":    KeyBackspace,
	"bs":           KeyBackspace,
	"tab":          KeyTab,
	"escape":       KeyEscape,
	"esc":          KeyEscape,
	"capslock":     KeyCapsLock,
	"delete":       KeyDelete,
	"del":          KeyDelete,
	"insert":       KeyInsert,
	"ins":          KeyInsert,
	"home":         KeyHome,
	"end":          KeyEnd,
	"pageup":       KeyPageUp,
	"pgup":         KeyPageUp,
	"pagedown":     KeyPageDown,
	"pgdn":         KeyPageDown,
	"up":           KeyUp,
	"down":         KeyDown,
	"left":         KeyLeft,
	"right":        KeyRight,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a')
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0')
		}
	}
	if len(name) >= 2 && name[0] == 'f' && name[1] >= '1' && name[1] <= '9' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n <= 12 {
			return KeyF1 + Key(n-1)
		}
	}
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}
