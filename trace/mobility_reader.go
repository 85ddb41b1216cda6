package trace

import (
	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// MobilityReader is the streaming trace reader for one mobility file,
// grounded on disolv-links/src/reader.rs's Reader: it keeps per-shard
// footer statistics for pruning and a time-keyed cache of decoded rows,
// evicting and reloading as the window slides forward.
type MobilityReader struct {
	dir       string
	streaming bool
	window    sim.T

	shards []shardEntry
	next   int // index of the first not-yet-loaded shard, in MinTime order

	cache map[sim.T]map[sim.AgentId]MapState
}

type shardEntry struct {
	path string
	foot footer
}

func NewMobilityReader(dir string, streaming bool, window sim.T) *MobilityReader {
	return &MobilityReader{dir: dir, streaming: streaming, window: window, cache: map[sim.T]map[sim.AgentId]MapState{}}
}

// Init loads the row groups covering [t0, t0+W), W being the window
// given to NewMobilityReader. For a non-streaming reader it loads every
// shard in full, at all time steps.
func (r *MobilityReader) Init(t0 sim.T) error {
	shards, err := discoverShards(r.dir)
	if err != nil {
		return err
	}
	r.shards = make([]shardEntry, 0, len(shards))
	for _, p := range shards {
		ft, err := readMobilityShardFooter(p)
		if err != nil {
			return err
		}
		r.shards = append(r.shards, shardEntry{path: p, foot: ft})
	}
	sortShardsByMinTime(r.shards)

	if !r.streaming {
		for i := range r.shards {
			if err := r.loadShard(i, 0, sim.MaxT); err != nil {
				return err
			}
		}
		r.next = len(r.shards)
		return nil
	}
	return r.loadWindow(t0, t0.Add(r.window))
}

// Stream evicts cached entries before t and loads any shard whose
// min/max overlaps [t, t+W). A no-op for static files.
func (r *MobilityReader) Stream(t sim.T) error {
	if !r.streaming {
		return nil
	}
	for ts := range r.cache {
		if ts < t {
			delete(r.cache, ts)
		}
	}
	return r.loadWindow(t, t.Add(r.window))
}

// TakeForStep destructively removes and returns the per-agent map for
// time t. A second call for the same t, or a t never loaded, yields an
// empty (non-nil) map.
func (r *MobilityReader) TakeForStep(t sim.T) map[sim.AgentId]MapState {
	m, ok := r.cache[t]
	if !ok {
		return map[sim.AgentId]MapState{}
	}
	delete(r.cache, t)
	return m
}

// loadWindow loads every row in [lo, hi) not yet cached. A shard is one
// row group (shard.go) and several time steps can live in the same
// shard, so a shard whose MaxTime reaches past hi is left at r.next
// (not advanced) — it still has rows a later, further-forward window
// will need — and is read again then, filtered to that later window.
// r.next only advances past a shard once its MaxTime falls inside the
// window just loaded, i.e. the shard is fully exhausted.
func (r *MobilityReader) loadWindow(lo, hi sim.T) error {
	for r.next < len(r.shards) {
		s := r.shards[r.next]
		if !s.foot.overlaps(lo, hi) {
			if s.foot.MaxTime < uint64(lo) {
				// entirely in the past: nothing left in this shard to load.
				r.next++
				continue
			}
			// shards are sorted by MinTime: this and every later shard
			// starts at or past hi, nothing more to load this call.
			break
		}
		if err := r.loadShard(r.next, lo, hi); err != nil {
			return err
		}
		if s.foot.MaxTime < uint64(hi) {
			r.next++
			continue
		}
		break
	}
	return nil
}

// loadShard reads one row group and inserts only the rows within
// [lo, hi) into the cache. A shard is one row group (shard.go), so
// several time steps can share a shard — this filter is the only
// sub-shard pruning the reader does; the footer overlap check in
// loadWindow only prunes whole shards.
func (r *MobilityReader) loadShard(i int, lo, hi sim.T) error {
	rows, _, err := readMobilityShard(r.shards[i].path)
	if err != nil {
		return err
	}
	for _, row := range rows {
		t := sim.T(row.TimeStep)
		if t < lo || t >= hi {
			continue
		}
		m, ok := r.cache[t]
		if !ok {
			m = map[sim.AgentId]MapState{}
			r.cache[t] = m
		}
		ms := MapState{X: row.X, Y: row.Y}
		if row.HasZ {
			z := row.Z
			ms.Z = &z
		}
		if row.HasVel {
			v := row.Vel
			ms.Velocity = &v
		}
		if row.HasRoad {
			rd := row.RoadID
			ms.RoadID = &rd
		}
		m[sim.AgentId(row.AgentID)] = ms
	}
	nlog.Infof("trace: loaded shard %s (%d rows)", r.shards[i].path, len(rows))
	return nil
}

func sortShardsByMinTime(s []shardEntry) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j].foot.MinTime < s[j-1].foot.MinTime; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
