package llm

import (
	"testing"
	"time"
)

func TestLatencyStats_EmptySnapshot(t *testing.T) {
	s := newLatencyStats(time.Hour)
	snap := s.Snapshot()
	if snap.Count != 0 {
		t.Errorf("expected count 0, got %d", snap.Count)
	}
}

func TestLatencyStats_RecordAndAggregate(t *testing.T) {
	s := newLatencyStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 4 {
		t.Fatalf("expected count 4, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 400 {
		t.Errorf("expected min 100 / max 400, got %d / %d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 250 {
		t.Errorf("expected avg 250, got %f", snap.AvgMs)
	}
}

func TestLatencyStats_NegativeClampedToZero(t *testing.T) {
	s := newLatencyStats(time.Hour)
	s.Record(-5)
	snap := s.Snapshot()
	if snap.MinMs != 0 {
		t.Errorf("expected negative sample clamped to 0, got %d", snap.MinMs)
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	values := []int64{10, 20, 30, 40}
	if got := percentile(values, 50); got != 25 {
		t.Errorf("expected p50 25, got %f", got)
	}
	if got := percentile(values, 100); got != 40 {
		t.Errorf("expected p100 40, got %f", got)
	}
	if got := percentile(values, 0); got != 10 {
		t.Errorf("expected p0 10, got %f", got)
	}
}
