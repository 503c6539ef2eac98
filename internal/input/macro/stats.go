package macro

import (
	"math"
	"sync/atomic"
	"time"
)

// Stats tracks playback activity.
type Stats struct {
	passes     atomic.Uint64
	replayed   atomic.Uint64
	skipped    atomic.Uint64
	sinkErrors atomic.Uint64

	// Lateness is how far past its offset an event was replayed.
	latenessCount   atomic.Uint64
	latenessTotalNs atomic.Int64
	latenessMinNs   atomic.Int64
	latenessMaxNs   atomic.Int64
}

func newStats() *Stats {
	s := &Stats{}
	s.latenessMinNs.Store(math.MaxInt64)
	return s
}

func (s *Stats) recordPass() {
	s.passes.Add(1)
}

func (s *Stats) recordReplayed() {
	s.replayed.Add(1)
}

func (s *Stats) recordSkipped() {
	s.skipped.Add(1)
}

func (s *Stats) recordSinkError() {
	s.sinkErrors.Add(1)
}

func (s *Stats) recordLateness(d time.Duration) {
	if d < 0 {
		d = 0
	}
	ns := d.Nanoseconds()

	s.latenessCount.Add(1)
	s.latenessTotalNs.Add(ns)

	for {
		old := s.latenessMinNs.Load()
		if ns >= old || s.latenessMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := s.latenessMaxNs.Load()
		if ns <= old || s.latenessMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Passes     uint64
	Replayed   uint64
	Skipped    uint64
	SinkErrors uint64

	LatenessAvg time.Duration
	LatenessMin time.Duration
	LatenessMax time.Duration
}

// Snapshot returns the current values.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Passes:     s.passes.Load(),
		Replayed:   s.replayed.Load(),
		Skipped:    s.skipped.Load(),
		SinkErrors: s.sinkErrors.Load(),
	}
	if n := s.latenessCount.Load(); n > 0 {
		snap.LatenessAvg = time.Duration(s.latenessTotalNs.Load() / int64(n))
		snap.LatenessMin = time.Duration(s.latenessMinNs.Load())
		snap.LatenessMax = time.Duration(s.latenessMaxNs.Load())
	}
	return snap
}
