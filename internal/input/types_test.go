package input

import (
	"testing"

	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNone, "none"},
		{KindKeyPress, "key-press"},
		{KindKeyRelease, "key-release"},
		{KindPointerMove, "pointer-move"},
		{KindButtonPress, "button-press"},
		{KindButtonRelease, "button-release"},
		{KindWheel, "wheel"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestKindClassification(t *testing.T) {
	for _, k := range []Kind{KindKeyPress, KindKeyRelease} {
		if !k.IsKey() || k.IsPointer() {
			t.Errorf("%s should be a key kind", k)
		}
	}
	for _, k := range []Kind{KindPointerMove, KindButtonPress, KindButtonRelease, KindWheel} {
		if k.IsKey() || !k.IsPointer() {
			t.Errorf("%s should be a pointer kind", k)
		}
	}
	if KindNone.IsKey() || KindNone.IsPointer() {
		t.Error("KindNone should be neither key nor pointer")
	}
}

func TestConstructors(t *testing.T) {
	if ev := NewKeyEvent(key.KeyA, true); ev.Kind != KindKeyPress || ev.Key != key.KeyA || ev.Time.IsZero() {
		t.Errorf("NewKeyEvent(press) = %+v", ev)
	}
	if ev := NewKeyEvent(key.KeyA, false); ev.Kind != KindKeyRelease {
		t.Errorf("NewKeyEvent(release).Kind = %v", ev.Kind)
	}
	if ev := NewMoveEvent(3, 4); ev.Position != (mouse.Position{X: 3, Y: 4}) {
		t.Errorf("NewMoveEvent position = %v", ev.Position)
	}
	if ev := NewButtonEvent(mouse.ButtonRight, false); ev.Kind != KindButtonRelease || ev.Button != mouse.ButtonRight {
		t.Errorf("NewButtonEvent = %+v", ev)
	}
	if ev := NewWheelEvent(1, -2); ev.Wheel != (mouse.Wheel{DX: 1, DY: -2}) {
		t.Errorf("NewWheelEvent wheel = %+v", ev.Wheel)
	}
}

func TestRawEventString(t *testing.T) {
	tests := []struct {
		ev   RawEvent
		want string
	}{
		{NewKeyEvent(key.KeyF1, true), "key-press F1"},
		{NewMoveEvent(10, 10), "pointer-move (10, 10)"},
		{NewButtonEvent(mouse.ButtonLeft, true), "button-press left"},
		{NewWheelEvent(0, 1), "wheel dx=0 dy=1"},
		{RawEvent{}, "none"},
	}

	for _, tt := range tests {
		if got := tt.ev.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
