package macro

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dshills/macrorec/internal/feedback"
	"github.com/dshills/macrorec/internal/input"
	"github.com/dshills/macrorec/internal/input/key"
	"github.com/dshills/macrorec/internal/input/mouse"
)

func TestBindings_Lookup(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		k    key.Key
		want Control
	}{
		{key.KeyF4, ControlStartRecord},
		{key.KeyF2, ControlStop},
		{key.KeyF3, ControlToggleLoop},
		{key.KeyF1, ControlPlayPause},
		{key.KeyF5, ControlNone},
		{key.KeyA, ControlNone},
		{key.KeyNone, ControlNone},
	}
	for _, tt := range tests {
		if got := b.Lookup(tt.k); got != tt.want {
			t.Errorf("Lookup(%s) = %s, want %s", tt.k, got, tt.want)
		}
	}
}

func TestBindings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		b       Bindings
		wantErr bool
	}{
		{"default", DefaultBindings(), false},
		{"custom", Bindings{StartRecord: key.KeyR, Stop: key.KeyS, ToggleLoop: key.KeyL, PlayPause: key.KeyP}, false},
		{"missing", Bindings{StartRecord: key.KeyF4, Stop: key.KeyF2, ToggleLoop: key.KeyF3}, true},
		{"duplicate", Bindings{StartRecord: key.KeyF4, Stop: key.KeyF4, ToggleLoop: key.KeyF3, PlayPause: key.KeyF1}, true},
		{"unknown key", Bindings{StartRecord: key.Key(9999), Stop: key.KeyF2, ToggleLoop: key.KeyF3, PlayPause: key.KeyF1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBindings) {
				t.Errorf("error %v is not ErrInvalidBindings", err)
			}
		})
	}
}

type recHarness struct {
	clock    *testClock
	session  *Session
	player   *Player
	recorder *Recorder
	sink     *fakeSink
	reporter *fakeReporter
	metrics  *input.Metrics
}

// newRecHarness wires a recorder on a frozen clock, so playback started
// by it never reaches an event scheduled after offset zero.
func newRecHarness(t *testing.T) *recHarness {
	t.Helper()

	h := &recHarness{
		clock:    newTestClock(),
		sink:     newFakeSink(),
		reporter: &fakeReporter{},
		metrics:  input.NewMetrics(),
	}
	h.session = NewSession(WithClock(h.clock.Now))

	var err error
	h.player, err = NewPlayer(h.session, h.sink, WithReporter(h.reporter), WithPollInterval(time.Millisecond))
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	h.recorder, err = NewRecorder(h.session, h.player, WithReporter(h.reporter), WithMetrics(h.metrics))
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	t.Cleanup(func() {
		h.player.Stop()
		select {
		case <-h.player.Done():
		case <-time.After(time.Second):
			t.Error("scheduler still running at cleanup")
		}
	})
	return h
}

func (h *recHarness) press(k key.Key) input.Outcome {
	return h.recorder.Handle(input.NewKeyEvent(k, true))
}

func (h *recHarness) release(k key.Key) input.Outcome {
	return h.recorder.Handle(input.NewKeyEvent(k, false))
}

func (h *recHarness) mode() Mode {
	return h.session.Status().Mode
}

func TestRecorder_StateTable(t *testing.T) {
	b := DefaultBindings()

	setups := map[string]func(t *testing.T, h *recHarness){
		"idle-empty": func(t *testing.T, h *recHarness) {},
		"idle": func(t *testing.T, h *recHarness) {
			h.press(b.StartRecord)
			h.clock.Advance(time.Hour)
			h.press(key.KeyA)
			h.press(b.Stop)
		},
		"recording": func(t *testing.T, h *recHarness) {
			h.press(b.StartRecord)
			h.press(key.KeyA)
		},
		"playing": func(t *testing.T, h *recHarness) {
			h.press(b.StartRecord)
			h.clock.Advance(time.Hour)
			h.press(key.KeyA)
			h.press(b.Stop)
			h.press(b.PlayPause)
		},
		"paused": func(t *testing.T, h *recHarness) {
			h.press(b.StartRecord)
			h.clock.Advance(time.Hour)
			h.press(key.KeyA)
			h.press(b.Stop)
			h.press(b.PlayPause)
			h.press(b.PlayPause)
		},
	}
	initial := map[string]Mode{
		"idle-empty": ModeIdle,
		"idle":       ModeIdle,
		"recording":  ModeRecording,
		"playing":    ModePlaying,
		"paused":     ModePaused,
	}

	tests := []struct {
		from string
		k    key.Key
		want Mode
	}{
		{"idle-empty", b.StartRecord, ModeRecording},
		{"idle-empty", b.Stop, ModeIdle},
		{"idle-empty", b.ToggleLoop, ModeIdle},
		{"idle-empty", b.PlayPause, ModeIdle},

		{"idle", b.StartRecord, ModeRecording},
		{"idle", b.Stop, ModeIdle},
		{"idle", b.ToggleLoop, ModeIdle},
		{"idle", b.PlayPause, ModePlaying},

		{"recording", b.StartRecord, ModeRecording},
		{"recording", b.Stop, ModeIdle},
		{"recording", b.ToggleLoop, ModeRecording},
		{"recording", b.PlayPause, ModeIdle},

		{"playing", b.StartRecord, ModeRecording},
		{"playing", b.Stop, ModeIdle},
		{"playing", b.ToggleLoop, ModePlaying},
		{"playing", b.PlayPause, ModePaused},

		{"paused", b.StartRecord, ModeRecording},
		{"paused", b.Stop, ModeIdle},
		{"paused", b.ToggleLoop, ModePaused},
		{"paused", b.PlayPause, ModePlaying},
	}

	for _, tt := range tests {
		t.Run(tt.from+"/"+b.Lookup(tt.k).String(), func(t *testing.T) {
			h := newRecHarness(t)
			setups[tt.from](t, h)
			if got := h.mode(); got != initial[tt.from] {
				t.Fatalf("setup left mode %s, want %s", got, initial[tt.from])
			}
			loopBefore := h.session.Status().Looping

			if got := h.press(tt.k); got != input.OutcomeControl {
				t.Errorf("Handle() outcome = %d, want OutcomeControl", got)
			}
			if got := h.mode(); got != tt.want {
				t.Errorf("mode = %s, want %s", got, tt.want)
			}

			st := h.session.Status()
			if tt.k == b.ToggleLoop && st.Looping == loopBefore {
				t.Error("toggle-loop did not flip looping")
			}
			if tt.k != b.ToggleLoop && st.Looping != loopBefore {
				t.Error("looping changed by a non-loop key")
			}
			if tt.k == b.StartRecord && st.Events != 0 {
				t.Errorf("events after start-record = %d, want 0", st.Events)
			}
		})
	}
}

func TestRecorder_ControlKeysNotRecorded(t *testing.T) {
	h := newRecHarness(t)
	b := h.recorder.Bindings()

	h.press(b.StartRecord)
	h.release(b.StartRecord)
	h.press(key.KeyA)
	if got := h.press(b.ToggleLoop); got != input.OutcomeControl {
		t.Errorf("control press outcome = %d, want OutcomeControl", got)
	}
	if got := h.release(b.ToggleLoop); got != input.OutcomeIgnored {
		t.Errorf("control release outcome = %d, want OutcomeIgnored", got)
	}
	h.release(key.KeyA)
	h.press(b.Stop)
	h.release(b.Stop)

	events := h.session.Events()
	if len(events) != 2 {
		t.Fatalf("recorded %d events, want 2: %+v", len(events), events)
	}
	if events[0].Action != PressKey(key.KeyA) || events[1].Action != ReleaseKey(key.KeyA) {
		t.Errorf("events = %v, %v", events[0].Action, events[1].Action)
	}
}

func TestRecorder_RecordsAllKinds(t *testing.T) {
	h := newRecHarness(t)
	b := h.recorder.Bindings()

	h.press(b.StartRecord)
	raws := []input.RawEvent{
		input.NewMoveEvent(10, 20),
		input.NewButtonEvent(mouse.ButtonLeft, true),
		input.NewButtonEvent(mouse.ButtonLeft, false),
		input.NewWheelEvent(0, -1),
		input.NewKeyEvent(key.KeyNone, true),
		{Kind: input.KindNone},
	}
	for _, raw := range raws {
		h.clock.Advance(5 * time.Millisecond)
		h.recorder.Handle(raw)
	}
	h.press(b.Stop)

	events := h.session.Events()
	want := []Action{
		MoveTo(10, 20),
		PressButton(mouse.ButtonLeft),
		ReleaseButton(mouse.ButtonLeft),
		Scroll(0, -1),
		PressKey(key.KeyNone),
	}
	if len(events) != len(want) {
		t.Fatalf("recorded %d events, want %d", len(events), len(want))
	}
	for i, e := range events {
		if e.Action != want[i] {
			t.Errorf("event %d = %s, want %s", i, e.Action, want[i])
		}
		if wantOff := time.Duration(i+1) * 5 * time.Millisecond; e.Offset != wantOff {
			t.Errorf("event %d offset = %v, want %v", i, e.Offset, wantOff)
		}
	}
}

func TestRecorder_IgnoresInputWhenIdle(t *testing.T) {
	h := newRecHarness(t)

	if got := h.press(key.KeyA); got != input.OutcomeIgnored {
		t.Errorf("outcome = %d, want OutcomeIgnored", got)
	}
	if got := h.recorder.Handle(input.NewMoveEvent(1, 1)); got != input.OutcomeIgnored {
		t.Errorf("outcome = %d, want OutcomeIgnored", got)
	}
	if n := len(h.session.Events()); n != 0 {
		t.Errorf("recorded %d events while idle", n)
	}
}

func TestRecorder_SetBindings(t *testing.T) {
	h := newRecHarness(t)

	custom := Bindings{StartRecord: key.KeyR, Stop: key.KeyS, ToggleLoop: key.KeyL, PlayPause: key.KeyP}
	if err := h.recorder.SetBindings(custom); err != nil {
		t.Fatalf("SetBindings() error = %v", err)
	}
	if h.recorder.Bindings() != custom {
		t.Errorf("Bindings() = %+v, want %+v", h.recorder.Bindings(), custom)
	}

	h.press(key.KeyR)
	if h.mode() != ModeRecording {
		t.Fatalf("mode = %s, want recording", h.mode())
	}
	if got := h.press(key.KeyF4); got != input.OutcomeRecorded {
		t.Errorf("old binding outcome = %d, want OutcomeRecorded", got)
	}

	if err := h.recorder.SetBindings(Bindings{}); err == nil {
		t.Error("SetBindings() accepted empty bindings")
	}
	if h.recorder.Bindings() != custom {
		t.Error("invalid SetBindings() replaced the bindings")
	}
}

func TestNewRecorder_InvalidBindings(t *testing.T) {
	s := NewSession()
	p, _ := NewPlayer(s, newFakeSink())
	if _, err := NewRecorder(s, p, WithBindings(Bindings{})); !errors.Is(err, ErrInvalidBindings) {
		t.Errorf("NewRecorder() error = %v, want ErrInvalidBindings", err)
	}
}

func TestRecorder_Feedback(t *testing.T) {
	h := newRecHarness(t)
	b := h.recorder.Bindings()

	h.press(b.PlayPause)
	h.press(b.StartRecord)
	h.clock.Advance(time.Hour)
	h.press(key.KeyA)
	h.release(key.KeyA)
	h.press(b.PlayPause)
	h.press(b.ToggleLoop)
	h.press(b.PlayPause)
	h.press(b.PlayPause)
	h.press(b.PlayPause)
	h.press(b.Stop)

	want := []feedback.Kind{
		feedback.KindNothingToPlay,
		feedback.KindRecordingStarted,
		feedback.KindRecordingStopped,
		feedback.KindLoopToggled,
		feedback.KindPlaybackStarting,
		feedback.KindPlaybackStarted,
		feedback.KindPlaybackPaused,
		feedback.KindPlaybackResumed,
		feedback.KindStopRequested,
		feedback.KindPlaybackStopping,
		feedback.KindPlaybackStopped,
	}
	got := h.reporter.Kinds()
	if len(got) != len(want) {
		t.Fatalf("feedback = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("feedback[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	stopped, _ := h.reporter.Last(feedback.KindRecordingStopped)
	if stopped.Events != 2 || stopped.Length != time.Hour {
		t.Errorf("recording stopped message = %+v", stopped)
	}
	loop, _ := h.reporter.Last(feedback.KindLoopToggled)
	if !loop.Looping {
		t.Error("loop toggled message reports looping off")
	}
	paused, _ := h.reporter.Last(feedback.KindPlaybackPaused)
	if paused.Length != time.Hour || paused.Simulated != 0 {
		t.Errorf("paused message = %+v", paused)
	}
}

func TestRecorder_AlreadyPlaying(t *testing.T) {
	h := newRecHarness(t)
	load(t, h.session, h.clock, ev(PressKey(key.KeyA), time.Hour))

	if err := h.player.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	h.recorder.startPlayback()

	if !h.reporter.Has(feedback.KindAlreadyPlaying) {
		t.Errorf("feedback = %v, want already-playing", h.reporter.Kinds())
	}
}

func TestRecorder_Metrics(t *testing.T) {
	h := newRecHarness(t)
	b := h.recorder.Bindings()

	h.press(key.KeyA)
	h.press(b.StartRecord)
	h.release(b.StartRecord)
	h.press(key.KeyA)
	h.recorder.Handle(input.NewMoveEvent(3, 4))

	snap := h.metrics.Snapshot()
	if snap.KeyEventsTotal != 4 {
		t.Errorf("KeyEventsTotal = %d, want 4", snap.KeyEventsTotal)
	}
	if snap.PointerEventsTotal != 1 {
		t.Errorf("PointerEventsTotal = %d, want 1", snap.PointerEventsTotal)
	}
	if snap.ControlPresses != 1 {
		t.Errorf("ControlPresses = %d, want 1", snap.ControlPresses)
	}
	if snap.RecordedEvents != 2 {
		t.Errorf("RecordedEvents = %d, want 2", snap.RecordedEvents)
	}
	if snap.IgnoredEvents != 2 {
		t.Errorf("IgnoredEvents = %d, want 2", snap.IgnoredEvents)
	}
}

func TestRecorder_Run(t *testing.T) {
	h := newRecHarness(t)
	b := h.recorder.Bindings()

	events := make(chan input.RawEvent, 4)
	events <- input.NewKeyEvent(b.StartRecord, true)
	events <- input.NewKeyEvent(key.KeyA, true)
	events <- input.NewKeyEvent(b.Stop, true)
	close(events)

	if err := h.recorder.Run(context.Background(), events); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n := len(h.session.Events()); n != 1 {
		t.Errorf("recorded %d events, want 1", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.recorder.Run(ctx, make(chan input.RawEvent)); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}
