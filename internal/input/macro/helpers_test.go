package macro

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dshills/macrorec/internal/feedback"
	"github.com/dshills/macrorec/internal/input/mouse"
)

type sinkCall struct {
	op  string
	arg string
	at  time.Time
}

func (c sinkCall) String() string {
	return c.op + "(" + c.arg + ")"
}

// fakeSink records every call with the time it was made.
type fakeSink struct {
	mu     sync.Mutex
	calls  []sinkCall
	failOn map[string]error
}

func newFakeSink() *fakeSink {
	return &fakeSink{failOn: map[string]error{}}
}

func (s *fakeSink) record(op, arg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, sinkCall{op: op, arg: arg, at: time.Now()})
	return s.failOn[op]
}

func (s *fakeSink) failWith(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

func (s *fakeSink) Calls() []sinkCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sinkCall, len(s.calls))
	copy(out, s.calls)
	return out
}

func (s *fakeSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *fakeSink) MoveTo(x, y int) error {
	return s.record("move", fmt.Sprintf("%d,%d", x, y))
}

func (s *fakeSink) PressButton(b mouse.Button) error {
	return s.record("button-down", b.String())
}

func (s *fakeSink) ReleaseButton(b mouse.Button) error {
	return s.record("button-up", b.String())
}

func (s *fakeSink) PressKey(name string) error {
	return s.record("key-down", name)
}

func (s *fakeSink) ReleaseKey(name string) error {
	return s.record("key-up", name)
}

func (s *fakeSink) Scroll(amount int, axis mouse.Axis) error {
	return s.record("scroll", fmt.Sprintf("%d,%s", amount, axis))
}

// fakeReporter collects feedback messages.
type fakeReporter struct {
	mu   sync.Mutex
	msgs []feedback.Message
}

func (r *fakeReporter) Report(msg feedback.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *fakeReporter) Kinds() []feedback.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]feedback.Kind, len(r.msgs))
	for i, m := range r.msgs {
		kinds[i] = m.Kind
	}
	return kinds
}

func (r *fakeReporter) Last(kind feedback.Kind) (feedback.Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Kind == kind {
			return r.msgs[i], true
		}
	}
	return feedback.Message{}, false
}

func (r *fakeReporter) Has(kind feedback.Kind) bool {
	_, ok := r.Last(kind)
	return ok
}

// testClock is a manual clock that can be switched to real time.
type testClock struct {
	mu   sync.Mutex
	t    time.Time
	real bool
}

func newTestClock() *testClock {
	return &testClock{t: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.real {
		return time.Now()
	}
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *testClock) UseRealTime() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.real = true
}

// load records events into s at their exact offsets.
func load(t *testing.T, s *Session, clock *testClock, events ...Event) {
	t.Helper()

	s.StartRecording()
	var at time.Duration
	for _, e := range events {
		clock.Advance(e.Offset - at)
		at = e.Offset
		if !s.Record(e.Action) {
			t.Fatalf("Record(%s) = false", e.Action)
		}
	}
	if _, _, ok := s.StopRecording(); !ok {
		t.Fatal("StopRecording() = false")
	}
}

type playHarness struct {
	clock    *testClock
	session  *Session
	player   *Player
	sink     *fakeSink
	reporter *fakeReporter
}

// newPlayHarness returns a player over events that runs on real time.
func newPlayHarness(t *testing.T, events []Event, opts ...Option) *playHarness {
	t.Helper()

	h := &playHarness{
		clock:    newTestClock(),
		sink:     newFakeSink(),
		reporter: &fakeReporter{},
	}
	h.session = NewSession(WithClock(h.clock.Now))
	load(t, h.session, h.clock, events...)
	h.clock.UseRealTime()

	opts = append([]Option{WithReporter(h.reporter), WithPollInterval(5 * time.Millisecond)}, opts...)
	p, err := NewPlayer(h.session, h.sink, opts...)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}
	h.player = p

	t.Cleanup(func() {
		h.player.Stop()
	})
	return h
}

func waitDone(t *testing.T, p *Player, timeout time.Duration) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(timeout):
		t.Fatalf("playback did not finish within %v", timeout)
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met within %v", timeout)
		}
		time.Sleep(time.Millisecond)
	}
}

func ev(a Action, offset time.Duration) Event {
	return Event{Action: a, Offset: offset}
}

// changedOf returns the channel closed on the session's next transition.
func changedOf(s *Session) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}
