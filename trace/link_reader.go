package trace

import (
	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// LinkReader is the streaming trace reader for one (source_kind,
// target_kind) link file. One LinkReader per configured pair; the
// bucket owns a map keyed by KindPair to the reader responsible for it.
type LinkReader struct {
	Pair      KindPair
	dir       string
	streaming bool
	window    sim.T

	shards []shardEntry
	next   int

	cache map[sim.T]map[sim.AgentId][]Link
}

func NewLinkReader(pair KindPair, dir string, streaming bool, window sim.T) *LinkReader {
	return &LinkReader{Pair: pair, dir: dir, streaming: streaming, window: window, cache: map[sim.T]map[sim.AgentId][]Link{}}
}

func (r *LinkReader) Init(t0 sim.T) error {
	shards, err := discoverShards(r.dir)
	if err != nil {
		return err
	}
	r.shards = make([]shardEntry, 0, len(shards))
	for _, p := range shards {
		ft, err := readLinkShardFooter(p)
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

func (r *LinkReader) Stream(t sim.T) error {
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

// TakeForStep destructively returns the source-agent → links map for t.
func (r *LinkReader) TakeForStep(t sim.T) map[sim.AgentId][]Link {
	m, ok := r.cache[t]
	if !ok {
		return map[sim.AgentId][]Link{}
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
func (r *LinkReader) loadWindow(lo, hi sim.T) error {
	for r.next < len(r.shards) {
		s := r.shards[r.next]
		if !s.foot.overlaps(lo, hi) {
			if s.foot.MaxTime < uint64(lo) {
				r.next++
				continue
			}
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
// [lo, hi) into the cache — the only sub-shard pruning this reader
// does, since a shard can span several time steps.
func (r *LinkReader) loadShard(i int, lo, hi sim.T) error {
	rows, _, err := readLinkShard(r.shards[i].path)
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
			m = map[sim.AgentId][]Link{}
			r.cache[t] = m
		}
		lk := Link{Target: sim.AgentId(row.TargetID)}
		if row.HasDist {
			lk.Distance, lk.HasDistance = row.Distance, true
		}
		if row.HasLoad {
			lk.LoadFactor, lk.HasLoad = row.LoadFactor, true
		}
		src := sim.AgentId(row.AgentID)
		m[src] = append(m[src], lk)
	}
	nlog.Infof("trace: loaded link shard %s (%d rows)", r.shards[i].path, len(rows))
	return nil
}
