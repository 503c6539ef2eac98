package mouse

import "fmt"

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonBack is the back navigation button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward navigation button (mouse button 5).
	ButtonForward
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "none"
	}
}

// ButtonFromCode converts the listener's button number into a Button.
// The listener numbers buttons 1 (left), 2 (right), 3 (middle), 4 and 5.
func ButtonFromCode(code uint16) Button {
	switch code {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonRight
	case 3:
		return ButtonMiddle
	case 4:
		return ButtonBack
	case 5:
		return ButtonForward
	default:
		return ButtonNone
	}
}

// Position represents an absolute screen coordinate.
type Position struct {
	X int
	Y int
}

// String returns the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Axis identifies a scroll axis.
type Axis uint8

const (
	// AxisVertical scrolls up and down.
	AxisVertical Axis = iota
	// AxisHorizontal scrolls left and right.
	AxisHorizontal
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Wheel is a scroll wheel movement.
// Positive DY scrolls up, positive DX scrolls right.
type Wheel struct {
	DX int
	DY int
}

// IsZero returns true if neither axis moved.
func (w Wheel) IsZero() bool {
	return w.DX == 0 && w.DY == 0
}

// ScrollStep is a single-axis scroll amount.
type ScrollStep struct {
	Axis   Axis
	Amount int
}

// Steps returns one step per non-zero axis, vertical before horizontal.
func (w Wheel) Steps() []ScrollStep {
	steps := make([]ScrollStep, 0, 2)
	if w.DY != 0 {
		steps = append(steps, ScrollStep{Axis: AxisVertical, Amount: w.DY})
	}
	if w.DX != 0 {
		steps = append(steps, ScrollStep{Axis: AxisHorizontal, Amount: w.DX})
	}
	return steps
}
