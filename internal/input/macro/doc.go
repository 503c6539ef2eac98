// Package macro records system-wide input and replays it with the recorded
// timing.
//
// # Concepts
//
// A recording is an ordered list of Events. Each Event holds an Action
// (pointer move, button press or release, wheel, key press or release)
// and its Offset from the moment recording began. Offsets are taken from
// the monotonic clock at capture time and never reordered.
//
// # Session
//
// Session is the single shared state object. One mutex guards it, and
// every state change goes through a Session method. Each change closes and
// replaces a broadcast channel so a waiting playback goroutine wakes up
// immediately instead of polling.
//
//	Idle ──record──▶ Recording ──stop/play──▶ Idle
//	Idle ──play────▶ Playing ◀──play/pause──▶ Paused
//	Playing/Paused ──stop──▶ Idle
//	any ──record──▶ Recording (events cleared)
//
// # Capture
//
// Recorder consumes raw input events on the listener goroutine. Presses of
// the four control keys run one transition each and are never recorded.
// Every other event is appended while the session is recording.
//
// # Playback
//
// Player runs one scheduler goroutine per playback over an immutable
// snapshot of the events. The scheduler sleeps until each event's offset
// is reached on the simulated clock, which excludes time spent paused,
// then replays the action through a Sink. With looping enabled the snapshot
// is replayed until playback is stopped.
//
// Stop sets the session idle and waits for the scheduler to exit, so no
// Sink call happens after Stop returns. Starting a new recording detaches
// the scheduler without waiting; the detached scheduler notices that its
// playback handle is gone and exits before touching the Sink again.
//
// # Thread Safety
//
// Session, Recorder and Player are safe for concurrent use.
package macro
