package macro

import "time"

// Event is one captured action and its offset from the start of recording.
// Events are immutable once captured.
type Event struct {
	Action Action
	Offset time.Duration
}

// RecordingLength returns the largest offset in events, or 0 if empty.
func RecordingLength(events []Event) time.Duration {
	var longest time.Duration
	for _, e := range events {
		if e.Offset > longest {
			longest = e.Offset
		}
	}
	return longest
}
