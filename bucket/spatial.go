package bucket

import (
	"fmt"

	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/tidwall/buntdb"
)

// spatialIndex is an in-memory rectangle-indexed cache of the current
// step's agent positions, backed by buntdb (":memory:") — the concrete
// structure behind "nearest" queries a domain composer can run without
// carrying its own spatial index (SPEC_FULL.md §4.3). config.Build
// enables it when field_settings width and height are both > 0; those
// values do not size it. It is
// optional: a Bucket built without field_settings never allocates one,
// and Nearby is a no-op until EnableSpatialIndex is called.
type spatialIndex struct {
	db *buntdb.DB
}

func newSpatialIndex() *spatialIndex {
	db, err := buntdb.Open(":memory:")
	if err != nil {
		// :memory: only fails on a build without cgo-free sqlite-style
		// backends missing, which buntdb's pure-Go b-tree never needs;
		// nil leaves Nearby silently returning no candidates.
		return nil
	}
	if err := db.CreateSpatialIndex("positions", "agent:*", buntdb.IndexRect); err != nil {
		db.Close()
		return nil
	}
	return &spatialIndex{db: db}
}

func posKey(id sim.AgentId) string { return fmt.Sprintf("agent:%d", id) }

func rectValue(x, y float64) string { return fmt.Sprintf("[%f %f]", x, y) }

func (s *spatialIndex) set(id sim.AgentId, x, y float64) {
	_ = s.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(posKey(id), rectValue(x, y), nil)
		return err
	})
}

func (s *spatialIndex) clear() {
	_ = s.db.Update(func(tx *buntdb.Tx) error { return tx.DeleteAll() })
}

// nearby returns the ids of every indexed position within the
// axis-aligned box centered at (x, y) with the given radius.
func (s *spatialIndex) nearby(x, y, radius float64) []sim.AgentId {
	var out []sim.AgentId
	box := fmt.Sprintf("[%f %f],[%f %f]", x-radius, y-radius, x+radius, y+radius)
	_ = s.db.View(func(tx *buntdb.Tx) error {
		return tx.Intersects("positions", box, func(key, _ string) bool {
			var id uint64
			if _, err := fmt.Sscanf(key, "agent:%d", &id); err == nil {
				out = append(out, sim.AgentId(id))
			}
			return true
		})
	})
	return out
}

func (s *spatialIndex) close() { _ = s.db.Close() }

// EnableSpatialIndex turns on the per-step position cache; called from
// package config when field_settings is present.
func (b *Bucket) EnableSpatialIndex() {
	b.spatial = newSpatialIndex()
}

// Nearby returns every agent id the spatial index has seen within
// radius of (x, y) as of the current step, or nil if no index was
// enabled. Positions are indexed as each kind's mobility cache is
// pulled in BeforeAgents, before any agent has had a chance to consume
// them via PositionOf, so Nearby reflects the whole step's population
// regardless of per-agent destructive reads.
func (b *Bucket) Nearby(x, y, radius float64) []sim.AgentId {
	if b.spatial == nil {
		return nil
	}
	return b.spatial.nearby(x, y, radius)
}
