package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks listener-side input handling.
type Metrics struct {
	// Event counters
	keyEventsTotal     atomic.Uint64
	pointerEventsTotal atomic.Uint64
	controlPresses     atomic.Uint64
	recordedEvents     atomic.Uint64
	ignoredEvents      atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	latencies         []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		latencies:         make([]time.Duration, 512),
		maxLatencySamples: 512,
		startTime:         time.Now(),
	}
}

// Outcome describes what the capture path did with an event.
type Outcome uint8

const (
	// OutcomeIgnored means the event was neither recorded nor a control key.
	OutcomeIgnored Outcome = iota
	// OutcomeControl means the event triggered a control transition.
	OutcomeControl
	// OutcomeRecorded means the event was appended to the recording.
	OutcomeRecorded
)

// RecordEvent records a handled event with its processing time.
func (m *Metrics) RecordEvent(kind Kind, outcome Outcome, latency time.Duration) {
	if m == nil {
		return
	}

	switch {
	case kind.IsKey():
		m.keyEventsTotal.Add(1)
	case kind.IsPointer():
		m.pointerEventsTotal.Add(1)
	}

	switch outcome {
	case OutcomeControl:
		m.controlPresses.Add(1)
	case OutcomeRecorded:
		m.recordedEvents.Add(1)
	default:
		m.ignoredEvents.Add(1)
	}

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	// Store in circular buffer
	m.mu.Lock()
	m.latencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal     uint64
	PointerEventsTotal uint64
	ControlPresses     uint64
	RecordedEvents     uint64
	IgnoredEvents      uint64

	AvgLatency  time.Duration
	P99Latency  time.Duration
	PeakLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.latencies))
	copy(latencies, m.latencies)
	start := m.startTime
	m.mu.RUnlock()

	snap := MetricsSnapshot{
		KeyEventsTotal:     m.keyEventsTotal.Load(),
		PointerEventsTotal: m.pointerEventsTotal.Load(),
		ControlPresses:     m.controlPresses.Load(),
		RecordedEvents:     m.recordedEvents.Load(),
		IgnoredEvents:      m.ignoredEvents.Load(),
		PeakLatency:        time.Duration(m.peakLatency.Load()),
		Uptime:             time.Since(start),
	}
	snap.AvgLatency, snap.P99Latency = latencyStats(latencies)
	return snap
}

// latencyStats computes average and p99 over the non-zero samples.
func latencyStats(latencies []time.Duration) (avg, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	return avg, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.pointerEventsTotal.Store(0)
	m.controlPresses.Store(0)
	m.recordedEvents.Store(0)
	m.ignoredEvents.Store(0)
	m.peakLatency.Store(0)

	m.mu.Lock()
	m.latencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
