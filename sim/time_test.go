package sim_test

import (
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

func TestTSubSaturatesAtZero(t *testing.T) {
	got := sim.T(5).Sub(sim.T(10))
	if got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestTAddSaturatesAtMax(t *testing.T) {
	got := sim.MaxT.Add(sim.T(1))
	if got != sim.MaxT {
		t.Fatalf("expected MaxT, got %d", got)
	}
}

func TestTFromI64ClampsNegative(t *testing.T) {
	if got := sim.TFromI64(-5); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := sim.TFromI64(42); got != sim.T(42) {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestCrossesBoundary(t *testing.T) {
	cases := []struct {
		prev, cur, interval sim.T
		want                bool
	}{
		{0, 100, 200, false},
		{100, 200, 200, true},
		{199, 201, 200, true},
		{0, 0, 200, false},
	}
	for _, c := range cases {
		if got := sim.CrossesBoundary(c.prev, c.cur, c.interval); got != c.want {
			t.Errorf("CrossesBoundary(%d,%d,%d) = %v, want %v", c.prev, c.cur, c.interval, got, c.want)
		}
	}
}
