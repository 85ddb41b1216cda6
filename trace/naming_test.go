package trace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverShardsSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"part-00002.mpk", "part-00000.mpk", "part-00001.mpk"} {
		if err := writeMobilityShard(filepath.Join(dir, name), []mobilityRow{{TimeStep: 0, AgentID: 1}}); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	// a non-matching file in the same directory must be ignored
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("not a shard"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}

	got, err := discoverShards(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 shards, got %d: %v", len(got), got)
	}
	want := []string{
		filepath.Join(dir, "part-00000.mpk"),
		filepath.Join(dir, "part-00001.mpk"),
		filepath.Join(dir, "part-00002.mpk"),
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("shard[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestDiscoverShardsEmptyDir(t *testing.T) {
	got, err := discoverShards(t.TempDir())
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no shards, got %v", got)
	}
}
