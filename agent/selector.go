package agent

import (
	"github.com/nagacharan-tangirala/disolv/cmn/xoshiro256"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

// Selector picks one link from the options the bucket returned for a
// target class — spec.md §4.4 uplink step 5, "policies include
// nearest, random, min-neighbors, min-data".
type Selector interface {
	Select(self sim.AgentId, options []trace.Link) (trace.Link, bool)
}

// NearestSelector picks the link with the smallest distance, breaking
// ties by highest-random-weight over the candidate target ids so two
// equidistant targets don't always resolve to slice order.
type NearestSelector struct{}

func (NearestSelector) Select(self sim.AgentId, options []trace.Link) (trace.Link, bool) {
	if len(options) == 0 {
		return trace.Link{}, false
	}
	min := options[0].Distance
	var tied []sim.AgentId
	byTarget := map[sim.AgentId]trace.Link{}
	for _, o := range options {
		byTarget[o.Target] = o
		if o.Distance < min {
			min = o.Distance
		}
	}
	for _, o := range options {
		if o.Distance == min {
			tied = append(tied, o.Target)
		}
	}
	winner, ok := highestRandomWeight(uint64(self), tied)
	if !ok {
		return trace.Link{}, false
	}
	return byTarget[winner], true
}

// RandomSelector draws uniformly from the options using the agent's own
// deterministic PRNG, so repeated runs with the same seed replay
// identically.
type RandomSelector struct {
	Rand *xoshiro256.Rand
}

func (s RandomSelector) Select(_ sim.AgentId, options []trace.Link) (trace.Link, bool) {
	if len(options) == 0 {
		return trace.Link{}, false
	}
	return options[s.Rand.Intn(len(options))], true
}

// MinNeighborsSelector picks the link whose target reports the fewest
// neighbors, approximated by the link's LoadFactor (a target already
// busy with many peers reports a higher load factor).
type MinNeighborsSelector struct{}

func (MinNeighborsSelector) Select(self sim.AgentId, options []trace.Link) (trace.Link, bool) {
	return selectByLoad(self, options)
}

// MinDataSelector picks the link carrying the least outstanding data,
// the same LoadFactor-minimizing policy as MinNeighborsSelector but
// kept distinct because the two policies are configured independently
// and may diverge once LoadFactor is split into separate metrics.
type MinDataSelector struct{}

func (MinDataSelector) Select(self sim.AgentId, options []trace.Link) (trace.Link, bool) {
	return selectByLoad(self, options)
}

func selectByLoad(self sim.AgentId, options []trace.Link) (trace.Link, bool) {
	if len(options) == 0 {
		return trace.Link{}, false
	}
	min := options[0].LoadFactor
	byTarget := map[sim.AgentId]trace.Link{}
	for _, o := range options {
		byTarget[o.Target] = o
		if o.LoadFactor < min {
			min = o.LoadFactor
		}
	}
	var tied []sim.AgentId
	for _, o := range options {
		if o.LoadFactor == min {
			tied = append(tied, o.Target)
		}
	}
	winner, ok := highestRandomWeight(uint64(self), tied)
	if !ok {
		return trace.Link{}, false
	}
	return byTarget[winner], true
}
