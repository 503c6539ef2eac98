package feedback

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestNotifier_Subscribe(t *testing.T) {
	n := New()
	defer n.Close()

	var received atomic.Int32
	sub := n.Subscribe(func(msg Message) {
		received.Add(1)
	})

	n.Report(Message{Kind: KindRecordingStarted})
	if received.Load() != 1 {
		t.Fatalf("received = %d, want 1", received.Load())
	}

	sub.Unsubscribe()
	n.Report(Message{Kind: KindRecordingStarted})
	if received.Load() != 1 {
		t.Error("unsubscribed observer received a message")
	}
}

func TestNotifier_SubscribeKinds(t *testing.T) {
	n := New()
	defer n.Close()

	var got []Kind
	n.SubscribeKinds(func(msg Message) {
		got = append(got, msg.Kind)
	}, KindPlaybackFinished, KindPlaybackFailed)

	n.Report(Message{Kind: KindRecordingStarted})
	n.Report(Message{Kind: KindPlaybackFinished})
	n.Report(Message{Kind: KindPlaybackFailed})

	if len(got) != 2 || got[0] != KindPlaybackFinished || got[1] != KindPlaybackFailed {
		t.Errorf("got %v, want [playback-finished playback-failed]", got)
	}
}

func TestNotifier_StampsTime(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	n := New(WithClock(func() time.Time { return at }))
	defer n.Close()

	var stamped time.Time
	n.Subscribe(func(msg Message) { stamped = msg.Time })

	n.Report(Message{Kind: KindRecordingStarted})
	if !stamped.Equal(at) {
		t.Errorf("Time = %v, want %v", stamped, at)
	}
}

func TestNotifier_AsyncPreservesOrder(t *testing.T) {
	n := New(WithAsync(4))

	var mu sync.Mutex
	var got []int
	n.Subscribe(func(msg Message) {
		mu.Lock()
		got = append(got, msg.Events)
		mu.Unlock()
	})

	for i := 0; i < 50; i++ {
		n.Report(Message{Kind: KindRecordingStopped, Events: i})
	}
	n.Close()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 50 {
		t.Fatalf("delivered %d messages, want 50", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("message %d carried %d", i, v)
		}
	}
}

func TestNotifier_ReportAfterClose(t *testing.T) {
	n := New()
	var received atomic.Bool
	n.Subscribe(func(msg Message) { received.Store(true) })

	n.Close()
	n.Close()
	n.Report(Message{Kind: KindRecordingStarted})

	if received.Load() {
		t.Error("message delivered after Close")
	}
}

func TestConsole_Observe(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, WithColor(false))

	c.Observe(Message{Kind: KindRecordingStopped, Events: 2})
	c.Observe(Message{Kind: KindAlreadyPlaying})

	want := "Recording stopped. 2 events recorded.\nAlready playing.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestConsole_Timestamps(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, WithColor(false), WithTimestamps())

	at := time.Date(2024, 1, 2, 13, 4, 5, 6_000_000, time.UTC)
	c.Observe(Message{Kind: KindPlaybackFinished, Time: at})

	if !strings.HasPrefix(buf.String(), "13:04:05.006 Playback finished.") {
		t.Errorf("output = %q", buf.String())
	}
}

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(msg string, args ...any)  { l.lines = append(l.lines, "INFO "+msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.lines = append(l.lines, "WARN "+msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.lines = append(l.lines, "ERROR "+msg) }

func TestLogObserver(t *testing.T) {
	log := &recordingLogger{}
	obs := LogObserver(log)

	obs(Message{Kind: KindPlaybackFinished})
	obs(Message{Kind: KindNothingToPlay})
	obs(Message{Kind: KindPlaybackFailed, Err: errors.New("x")})

	want := []string{"INFO Playback finished.", "WARN No recorded events to play.", "ERROR Playback failed: x"}
	if len(log.lines) != len(want) {
		t.Fatalf("lines = %v", log.lines)
	}
	for i := range want {
		if log.lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, log.lines[i], want[i])
		}
	}
}

func TestDesktopObserver(t *testing.T) {
	var title, body string
	var reported error
	obs := DesktopObserver("macrorec", func(t, m string) error {
		title, body = t, m
		return errors.New("no notification daemon")
	}, func(err error) { reported = err })

	obs(Message{Kind: KindRecordingStarted})

	if title != "macrorec" || body != "Recording started." {
		t.Errorf("notify(%q, %q)", title, body)
	}
	if reported == nil {
		t.Error("notification error was not reported")
	}
}
