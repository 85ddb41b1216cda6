package trace

import (
	"path/filepath"
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

func TestLinkReaderStreamingBoundary(t *testing.T) {
	dir := t.TempDir()
	rows := []linkRow{
		{TimeStep: 0, AgentID: 1, TargetID: 2, HasDist: true, Distance: 10},
		{TimeStep: 100, AgentID: 1, TargetID: 2, HasDist: true, Distance: 11},
		{TimeStep: 200, AgentID: 1, TargetID: 2, HasDist: true, Distance: 12},
	}
	if err := writeLinkShard(filepath.Join(dir, "part-00000.mpk"), rows); err != nil {
		t.Fatalf("write shard: %v", err)
	}

	pair := KindPair{Source: sim.KindVehicle, Target: sim.KindRSU}
	r := NewLinkReader(pair, dir, true, 100)
	if err := r.Init(0); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, ok := r.cache[0]; !ok {
		t.Fatalf("expected cache to hold t=0 after init")
	}
	if _, ok := r.cache[200]; ok {
		t.Fatalf("did not expect t=200 loaded yet")
	}

	if err := r.Stream(200); err != nil {
		t.Fatalf("stream: %v", err)
	}
	links := r.TakeForStep(200)
	got := links[sim.AgentId(1)]
	if len(got) != 1 || got[0].Target != sim.AgentId(2) || got[0].Distance != 12 {
		t.Fatalf("unexpected links at t=200: %+v", got)
	}
}

func TestLinkReaderMissingPairYieldsEmptyMap(t *testing.T) {
	r := NewLinkReader(KindPair{Source: sim.KindVehicle, Target: sim.KindBaseStation}, t.TempDir(), false, 0)
	if err := r.Init(0); err != nil {
		t.Fatalf("init on empty dir: %v", err)
	}
	links := r.TakeForStep(0)
	if len(links) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(links))
	}
}
