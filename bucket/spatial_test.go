package bucket

import "testing"

func TestSpatialIndexFindsAgentWithinRadius(t *testing.T) {
	b, _ := newTestBucket(t)
	b.EnableSpatialIndex()
	b.BeforeAgents(0)

	got := b.Nearby(10, 20, 1)
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected agent 1 within radius of its own position, got %v", got)
	}

	if got := b.Nearby(-100, -100, 1); len(got) != 0 {
		t.Fatalf("expected no agents far from the indexed position, got %v", got)
	}
}

func TestSpatialIndexDisabledByDefault(t *testing.T) {
	b, _ := newTestBucket(t)
	b.BeforeAgents(0)

	if got := b.Nearby(10, 20, 1); got != nil {
		t.Fatalf("expected Nearby to be a no-op without EnableSpatialIndex, got %v", got)
	}
}

func TestSpatialIndexClearedEachStep(t *testing.T) {
	b, _ := newTestBucket(t)
	b.EnableSpatialIndex()
	b.BeforeAgents(0)
	if got := b.Nearby(10, 20, 1); len(got) != 1 {
		t.Fatalf("expected agent 1 indexed at t=0, got %v", got)
	}

	// t=1 has no mobility row for agent 1 (the fixture only writes t=0),
	// so after the next BeforeAgents the stale position must be gone.
	b.BeforeAgents(1)
	if got := b.Nearby(10, 20, 1); len(got) != 0 {
		t.Fatalf("expected the t=0 position to be cleared at t=1, got %v", got)
	}
}
