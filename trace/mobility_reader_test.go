package trace

import (
	"path/filepath"
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

// TestMobilityReaderStreamingBoundary is spec.md §8 scenario 2 verbatim:
// positions at t in {0,100,200,300}, streaming_interval=200. After Init
// at t=0 the cache holds 0 and 100; after Stream(200) it holds 200 and
// 300, and 0/100 are gone.
func TestMobilityReaderStreamingBoundary(t *testing.T) {
	dir := t.TempDir()
	rows := []mobilityRow{
		{TimeStep: 0, AgentID: 1, X: 0, Y: 0},
		{TimeStep: 100, AgentID: 1, X: 1, Y: 0},
		{TimeStep: 200, AgentID: 1, X: 2, Y: 0},
		{TimeStep: 300, AgentID: 1, X: 3, Y: 0},
	}
	if err := writeMobilityShard(filepath.Join(dir, "part-00000.mpk"), rows); err != nil {
		t.Fatalf("write shard: %v", err)
	}

	r := NewMobilityReader(dir, true, 200)
	if err := r.Init(0); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, ok := r.cache[0]; !ok {
		t.Fatalf("expected cache to hold t=0 after init")
	}
	if _, ok := r.cache[100]; !ok {
		t.Fatalf("expected cache to hold t=100 after init")
	}
	if _, ok := r.cache[200]; ok {
		t.Fatalf("did not expect cache to hold t=200 after init at t=0 with window 200")
	}

	if err := r.Stream(200); err != nil {
		t.Fatalf("stream: %v", err)
	}
	if _, ok := r.cache[0]; ok {
		t.Fatalf("expected t=0 evicted after Stream(200)")
	}
	if _, ok := r.cache[100]; ok {
		t.Fatalf("expected t=100 evicted after Stream(200)")
	}
	if _, ok := r.cache[200]; !ok {
		t.Fatalf("expected cache to hold t=200 after Stream(200)")
	}
	if _, ok := r.cache[300]; !ok {
		t.Fatalf("expected cache to hold t=300 after Stream(200)")
	}
}

func TestMobilityReaderTakeForStepIsDestructive(t *testing.T) {
	dir := t.TempDir()
	rows := []mobilityRow{{TimeStep: 0, AgentID: 7, X: 5, Y: 6}}
	if err := writeMobilityShard(filepath.Join(dir, "part-00000.mpk"), rows); err != nil {
		t.Fatalf("write shard: %v", err)
	}

	r := NewMobilityReader(dir, false, 0)
	if err := r.Init(0); err != nil {
		t.Fatalf("init: %v", err)
	}
	first := r.TakeForStep(0)
	if len(first) != 1 {
		t.Fatalf("expected 1 agent at t=0, got %d", len(first))
	}
	if ms, ok := first[sim.AgentId(7)]; !ok || ms.X != 5 || ms.Y != 6 {
		t.Fatalf("unexpected map state: %+v ok=%v", ms, ok)
	}
	second := r.TakeForStep(0)
	if len(second) != 0 {
		t.Fatalf("expected take-for-step to be destructive, got %d entries on re-read", len(second))
	}
}

func TestMobilityReaderOptionalColumnsNilWhenAbsent(t *testing.T) {
	dir := t.TempDir()
	rows := []mobilityRow{{TimeStep: 0, AgentID: 1, X: 1, Y: 2}}
	if err := writeMobilityShard(filepath.Join(dir, "part-00000.mpk"), rows); err != nil {
		t.Fatalf("write shard: %v", err)
	}
	r := NewMobilityReader(dir, false, 0)
	if err := r.Init(0); err != nil {
		t.Fatalf("init: %v", err)
	}
	m := r.TakeForStep(0)
	ms := m[sim.AgentId(1)]
	if ms.Z != nil || ms.Velocity != nil || ms.RoadID != nil {
		t.Fatalf("expected nil optional fields, got %+v", ms)
	}
}
