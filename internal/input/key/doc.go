// Package key provides keyboard key identities for the recorder.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a physical keyboard key (letters, digits, function keys,
//     modifiers and navigation keys)
//   - FromScanCode: Translates the listener's virtual key codes into a Key
//   - Parse: Reads key names from configuration values
//
// # Key Names
//
// Key names are case-insensitive and accept common aliases:
//
//   - Function keys: "F1" through "F12"
//   - Characters: "a", "Z", "7"
//   - Special keys: "Enter"/"Return", "Escape"/"Esc", "Space", "Tab"
//   - Modifiers: "LShift", "RCtrl", "Ctrl" (left), "Alt", "Meta"
//
// Keys the listener reports but this package does not know map to KeyNone.
// Such keys are still recorded, and are dropped when replayed.
package key
