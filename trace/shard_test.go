package trace

import (
	"path/filepath"
	"testing"

	"github.com/nagacharan-tangirala/disolv/sim"
)

func TestMobilityShardRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part-00000.mpk")
	z, vel, road := 1.5, 2.5, uint64(42)
	rows := []mobilityRow{
		{TimeStep: 5, AgentID: 1, X: 10, Y: 20, HasZ: true, Z: z, HasVel: true, Vel: vel, HasRoad: true, RoadID: road},
		{TimeStep: 9, AgentID: 2, X: -3, Y: 4},
	}
	if err := writeMobilityShard(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, foot, err := readMobilityShard(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if foot.MinTime != 5 || foot.MaxTime != 9 || foot.RowCount != 2 {
		t.Fatalf("unexpected footer: %+v", foot)
	}
	if got[0] != rows[0] || got[1] != rows[1] {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, rows)
	}
}

func TestMobilityShardFooterOnlyReadSkipsDecompression(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "part-00000.mpk")
	rows := []mobilityRow{{TimeStep: 3, AgentID: 1, X: 0, Y: 0}}
	if err := writeMobilityShard(path, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	foot, err := readMobilityShardFooter(path)
	if err != nil {
		t.Fatalf("read footer: %v", err)
	}
	if foot.MinTime != 3 || foot.MaxTime != 3 || foot.RowCount != 1 {
		t.Fatalf("unexpected footer: %+v", foot)
	}
}

func TestFooterOverlaps(t *testing.T) {
	f := footer{MinTime: 100, MaxTime: 199}
	cases := []struct {
		lo, hi uint64
		want   bool
	}{
		{0, 100, false},
		{0, 101, true},
		{199, 300, true},
		{200, 300, false},
	}
	for _, c := range cases {
		if got := f.overlaps(sim.T(c.lo), sim.T(c.hi)); got != c.want {
			t.Errorf("overlaps(%d,%d) = %v, want %v", c.lo, c.hi, got, c.want)
		}
	}
}
