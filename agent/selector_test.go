package agent

import (
	"testing"

	"github.com/nagacharan-tangirala/disolv/cmn/xoshiro256"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

func TestNearestSelectorPicksMinDistance(t *testing.T) {
	options := []trace.Link{
		{Target: 1, Distance: 30},
		{Target: 2, Distance: 10},
		{Target: 3, Distance: 20},
	}
	got, ok := NearestSelector{}.Select(100, options)
	if !ok || got.Target != 2 {
		t.Fatalf("expected target 2 (min distance), got %+v ok=%v", got, ok)
	}
}

func TestNearestSelectorTieBreakIsDeterministic(t *testing.T) {
	options := []trace.Link{{Target: 1, Distance: 10}, {Target: 2, Distance: 10}}
	got1, ok1 := NearestSelector{}.Select(42, options)
	got2, ok2 := NearestSelector{}.Select(42, options)
	if !ok1 || !ok2 || got1.Target != got2.Target {
		t.Fatalf("expected the same tie-break winner across calls: %+v vs %+v", got1, got2)
	}
}

func TestNearestSelectorEmptyOptions(t *testing.T) {
	if _, ok := (NearestSelector{}).Select(1, nil); ok {
		t.Fatalf("expected no selection from empty options")
	}
}

func TestRandomSelectorDeterministicFromSeed(t *testing.T) {
	options := []trace.Link{{Target: 1}, {Target: 2}, {Target: 3}}
	s1 := RandomSelector{Rand: xoshiro256.NewRand(7)}
	s2 := RandomSelector{Rand: xoshiro256.NewRand(7)}
	got1, _ := s1.Select(0, options)
	got2, _ := s2.Select(0, options)
	if got1.Target != got2.Target {
		t.Fatalf("expected same-seed replay to pick the same target: %v vs %v", got1.Target, got2.Target)
	}
}

func TestMinNeighborsSelectorPicksMinLoad(t *testing.T) {
	options := []trace.Link{
		{Target: 1, LoadFactor: 0.8},
		{Target: 2, LoadFactor: 0.2},
	}
	got, ok := MinNeighborsSelector{}.Select(1, options)
	if !ok || got.Target != sim.AgentId(2) {
		t.Fatalf("expected target 2 (min load), got %+v", got)
	}
}
