package macro

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mode is the session's current activity.
type Mode uint8

const (
	// ModeIdle is neither recording nor playing.
	ModeIdle Mode = iota
	// ModeRecording captures input into the event list.
	ModeRecording
	// ModePlaying replays the event list.
	ModePlaying
	// ModePaused holds playback with the simulated clock frozen.
	ModePaused
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeRecording:
		return "recording"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// IsPlayback returns true for Playing and Paused.
func (m Mode) IsPlayback() bool {
	return m == ModePlaying || m == ModePaused
}

// Status is a consistent snapshot of the session.
type Status struct {
	Mode Mode

	// Events is the number of recorded events.
	Events int

	// Length is the recording length computed when recording last stopped.
	Length time.Duration

	// Looping reports whether playback repeats.
	Looping bool

	// Simulated is the playback position, frozen while paused.
	// Zero unless playing or paused.
	Simulated time.Duration

	// Elapsed is the time since recording began. Zero unless recording.
	Elapsed time.Duration

	// PlaybackID identifies the active playback. Empty when none.
	PlaybackID string
}

// PlayPause is the result of the play/pause command.
type PlayPause uint8

const (
	// PlayPauseStart asks the caller to start playback.
	PlayPauseStart PlayPause = iota
	// PlayPauseStopRecording asks the caller to stop recording.
	PlayPauseStopRecording
	// PlayPausePaused reports that playback was paused.
	PlayPausePaused
	// PlayPauseResumed reports that playback was resumed.
	PlayPauseResumed
)

// String returns the result name.
func (p PlayPause) String() string {
	switch p {
	case PlayPauseStart:
		return "start-playback"
	case PlayPauseStopRecording:
		return "stop-recording"
	case PlayPausePaused:
		return "paused"
	case PlayPauseResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// StopRequest tells the caller what the stop command must stop.
type StopRequest struct {
	Playback  bool
	Recording bool
}

// Playback is one playback run: an immutable copy of the events and
// a generation identity. The scheduler owning it closes done on exit.
type Playback struct {
	ID     string
	Events []Event
	Length time.Duration

	done chan struct{}
}

// Done is closed when the scheduler for this playback has exited.
func (p *Playback) Done() <-chan struct{} {
	return p.done
}

// Session is the shared recording and playback state.
//
// All fields are guarded by mu. Timing fields are live only in the modes
// that use them: recordBegan while recording, pauseBegan while paused,
// playbackBegan and pausedAccum while playing or paused.
type Session struct {
	mu  sync.Mutex
	now func() time.Time

	mode          Mode
	events        []Event
	recordBegan   time.Time
	looping       bool
	pausedAccum   time.Duration
	pauseBegan    time.Time
	playbackBegan time.Time
	length        time.Duration
	playback      *Playback

	// changed is closed and replaced on every transition.
	changed chan struct{}
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock sets the time source. Tests use it to control offsets.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLooping sets the initial loop flag.
func WithLooping(on bool) SessionOption {
	return func(s *Session) {
		s.looping = on
	}
}

// NewSession creates an idle session with no events.
func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		now:     time.Now,
		changed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartRecording clears the events and begins recording.
// A playback in progress is detached without waiting for its scheduler;
// detached reports whether that happened.
func (s *Session) StartRecording() (detached bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode.IsPlayback() {
		detached = s.leavePlaybackLocked() != nil
	}
	s.mode = ModeRecording
	s.events = nil
	s.recordBegan = s.now()
	s.signalLocked()
	return detached
}

// StopRecording ends recording and computes the recording length.
// Returns false if the session was not recording.
func (s *Session) StopRecording() (events int, length time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeRecording {
		return len(s.events), s.length, false
	}
	s.mode = ModeIdle
	s.recordBegan = time.Time{}
	s.length = RecordingLength(s.events)
	s.signalLocked()
	return len(s.events), s.length, true
}

// Record appends a while recording. Returns false in any other mode.
// Offsets never decrease even if the clock does.
func (s *Session) Record(a Action) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeRecording {
		return false
	}
	offset := s.now().Sub(s.recordBegan)
	if n := len(s.events); n > 0 && offset < s.events[n-1].Offset {
		offset = s.events[n-1].Offset
	}
	if offset < 0 {
		offset = 0
	}
	s.events = append(s.events, Event{Action: a, Offset: offset})
	return true
}

// TogglePlayPause runs the play/pause command.
// Pause and resume happen here; starting playback and stopping a
// recording are left to the caller, signalled by the result.
func (s *Session) TogglePlayPause() (PlayPause, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var result PlayPause
	switch s.mode {
	case ModeRecording:
		result = PlayPauseStopRecording
	case ModePlaying:
		s.mode = ModePaused
		s.pauseBegan = now
		s.signalLocked()
		result = PlayPausePaused
	case ModePaused:
		s.pausedAccum += now.Sub(s.pauseBegan)
		s.pauseBegan = time.Time{}
		s.mode = ModePlaying
		s.signalLocked()
		result = PlayPauseResumed
	default:
		result = PlayPauseStart
	}
	return result, s.statusLocked(now)
}

// RequestStop reports what the stop command has to stop.
// The session is not modified.
func (s *Session) RequestStop() StopRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return StopRequest{
		Playback:  s.mode.IsPlayback(),
		Recording: s.mode == ModeRecording,
	}
}

// ToggleLoop flips the loop flag and returns the new value.
func (s *Session) ToggleLoop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.looping = !s.looping
	s.signalLocked()
	return s.looping
}

// BeginPlayback moves an idle session with events into Playing and
// returns the snapshot to replay.
func (s *Session) BeginPlayback() (*Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.mode.IsPlayback():
		return nil, ErrAlreadyPlaying
	case s.mode == ModeRecording:
		return nil, ErrBusyRecording
	case len(s.events) == 0:
		return nil, ErrNothingToPlay
	}

	p := &Playback{
		ID:     uuid.NewString(),
		Events: slices.Clone(s.events),
		Length: s.length,
		done:   make(chan struct{}),
	}
	s.mode = ModePlaying
	s.playbackBegan = s.now()
	s.pausedAccum = 0
	s.pauseBegan = time.Time{}
	s.playback = p
	s.signalLocked()
	return p, nil
}

// Status returns a snapshot of the session.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked(s.now())
}

// Events returns a copy of the recorded events.
func (s *Session) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

// haltPlayback moves Playing or Paused to Idle and hands back the
// playback so the caller can wait for it.
func (s *Session) haltPlayback() *Playback {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mode.IsPlayback() {
		return nil
	}
	s.mode = ModeIdle
	p := s.leavePlaybackLocked()
	s.signalLocked()
	return p
}

// passView is what the scheduler sees on each iteration.
type passView struct {
	// current is false once p no longer owns the playback slot.
	current bool
	mode    Mode
	looping bool
	elapsed time.Duration
	changed <-chan struct{}
}

func (s *Session) observe(p *Playback) passView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := passView{changed: s.changed}
	if s.playback != p {
		return v
	}
	v.current = true
	v.mode = s.mode
	v.looping = s.looping
	v.elapsed = s.simulatedLocked(s.now())
	return v
}

// resetPass restarts the simulated clock for a new pass.
func (s *Session) resetPass(p *Playback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playback != p {
		return false
	}
	now := s.now()
	s.playbackBegan = now
	s.pausedAccum = 0
	if s.mode == ModePaused {
		s.pauseBegan = now
	} else {
		s.pauseBegan = time.Time{}
	}
	return true
}

// passEnd is the decision taken after the last event of a pass.
type passEnd uint8

const (
	passStopped passEnd = iota
	passFinished
	passLoop
	passHold
)

func (s *Session) endPass(p *Playback) (passEnd, <-chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := s.changed
	switch {
	case s.playback != p || !s.mode.IsPlayback():
		return passStopped, changed
	case s.mode == ModePaused:
		return passHold, changed
	case s.looping:
		return passLoop, changed
	}
	s.mode = ModeIdle
	s.leavePlaybackLocked()
	s.signalLocked()
	return passFinished, s.changed
}

// abortPlayback moves the session to Idle if p still owns the slot.
func (s *Session) abortPlayback(p *Playback) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.playback != p {
		return false
	}
	s.mode = ModeIdle
	s.leavePlaybackLocked()
	s.signalLocked()
	return true
}

func (s *Session) leavePlaybackLocked() *Playback {
	p := s.playback
	s.playback = nil
	s.playbackBegan = time.Time{}
	s.pauseBegan = time.Time{}
	s.pausedAccum = 0
	return p
}

func (s *Session) simulatedLocked(now time.Time) time.Duration {
	var d time.Duration
	switch s.mode {
	case ModePlaying:
		d = now.Sub(s.playbackBegan) - s.pausedAccum
	case ModePaused:
		d = s.pauseBegan.Sub(s.playbackBegan) - s.pausedAccum
	}
	if d < 0 {
		return 0
	}
	return d
}

func (s *Session) statusLocked(now time.Time) Status {
	st := Status{
		Mode:      s.mode,
		Events:    len(s.events),
		Length:    s.length,
		Looping:   s.looping,
		Simulated: s.simulatedLocked(now),
	}
	if s.mode == ModeRecording {
		st.Elapsed = now.Sub(s.recordBegan)
	}
	if s.playback != nil {
		st.PlaybackID = s.playback.ID
	}
	return st
}

func (s *Session) signalLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}
