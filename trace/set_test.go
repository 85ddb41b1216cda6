package trace

import (
	"path/filepath"
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

func TestSetRoutesByKindAndPair(t *testing.T) {
	vehDir := t.TempDir()
	if err := writeMobilityShard(filepath.Join(vehDir, "part-00000.mpk"),
		[]mobilityRow{{TimeStep: 0, AgentID: 1, X: 1, Y: 1}}); err != nil {
		t.Fatalf("write mobility: %v", err)
	}
	linkDir := t.TempDir()
	if err := writeLinkShard(filepath.Join(linkDir, "part-00000.mpk"),
		[]linkRow{{TimeStep: 0, AgentID: 1, TargetID: 9, HasDist: true, Distance: 3}}); err != nil {
		t.Fatalf("write link: %v", err)
	}

	pair := KindPair{Source: sim.KindVehicle, Target: sim.KindRSU}
	s := NewSet()
	s.AddMobility(sim.KindVehicle, vehDir, false, 0)
	s.AddLink(pair, linkDir, false, 0)

	if err := s.Init(0); err != nil {
		t.Fatalf("init: %v", err)
	}

	positions := s.TakeMobility(sim.KindVehicle, 0)
	if len(positions) != 1 {
		t.Fatalf("expected 1 vehicle position, got %d", len(positions))
	}
	if empty := s.TakeMobility(sim.KindRSU, 0); len(empty) != 0 {
		t.Fatalf("expected empty map for unconfigured kind, got %d", len(empty))
	}

	links := s.TakeLinks(pair, 0)
	if len(links[sim.AgentId(1)]) != 1 {
		t.Fatalf("expected 1 link for agent 1, got %d", len(links[sim.AgentId(1)]))
	}
	other := KindPair{Source: sim.KindRSU, Target: sim.KindBaseStation}
	if empty := s.TakeLinks(other, 0); len(empty) != 0 {
		t.Fatalf("expected empty map for unconfigured pair, got %d", len(empty))
	}
}
