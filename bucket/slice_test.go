package bucket

import (
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

// TestSliceFeasibilityFailure is spec.md §8 scenario 4 verbatim:
// bandwidth=100, two payloads of size 60; the first is accepted leaving
// 40, the second is rejected as NoBandwidth with Exceeding == 20.
func TestSliceFeasibilityFailure(t *testing.T) {
	s := NewNetworkSlice("urban", 100, 0)

	first := s.Consume(Metadata{TotalSize: 60}, 5)
	if !first.OK() {
		t.Fatalf("expected first payload to be feasible, got %+v", first)
	}
	if s.Available() != 40 {
		t.Fatalf("expected 40 bandwidth remaining, got %d", s.Available())
	}

	second := s.Consume(Metadata{TotalSize: 60}, 5)
	if second.OK() {
		t.Fatalf("expected second payload to be infeasible")
	}
	if second.Status != sim.InfeasibleBandwidth {
		t.Fatalf("expected InfeasibleBandwidth, got %v", second.Status)
	}
	if second.Exceeding != 20 {
		t.Fatalf("expected exceeding == 20, got %d", second.Exceeding)
	}
	if s.Available() != 40 {
		t.Fatalf("rejected payload must not decrement available bandwidth, got %d", s.Available())
	}
}

func TestSliceResetRestoresCapacity(t *testing.T) {
	s := NewNetworkSlice("rural", 50, 0)
	s.Consume(Metadata{TotalSize: 50}, 1)
	if s.Available() != 0 {
		t.Fatalf("expected 0 available, got %d", s.Available())
	}
	s.Reset()
	if s.Available() != 50 {
		t.Fatalf("expected reset to restore capacity, got %d", s.Available())
	}
}

func TestSliceLatencyCeiling(t *testing.T) {
	s := NewNetworkSlice("edge", 1000, 10)
	res := s.Consume(Metadata{TotalSize: 1}, 11)
	if res.OK() {
		t.Fatalf("expected latency ceiling to reject")
	}
	if res.Status != sim.InfeasibleLatency {
		t.Fatalf("expected InfeasibleLatency, got %v", res.Status)
	}
}
