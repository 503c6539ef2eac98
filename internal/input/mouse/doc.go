// Package mouse provides pointer input types for the recorder.
//
// The mouse package describes the pointer half of a captured input stream:
// which button was involved, where the pointer was, and how far the wheel
// turned.
//
// # Core Types
//
// Position is an absolute screen coordinate. Recordings store absolute
// positions so replay does not depend on where the pointer starts:
//
//	pos := mouse.Position{X: 100, Y: 50}
//
// Button identifies a pointer button. ButtonFromCode translates the
// listener's 1-based button numbering:
//
//	mouse.ButtonFromCode(1) // ButtonLeft
//	mouse.ButtonFromCode(3) // ButtonMiddle
//
// # Wheel Handling
//
// Wheel carries one delta per axis. Positive DY scrolls up, positive DX
// scrolls right. Steps yields one (axis, amount) pair for each non-zero
// delta, vertical first, which is the order replay injects them in:
//
//	for _, s := range mouse.Wheel{DX: 2, DY: -1}.Steps() {
//	    sink.Scroll(s.Amount, s.Axis)
//	}
package mouse
