// Package trace implements the streaming trace reader (C2): it lazily
// loads mobility and link data from columnar on-disk shards in
// time-windowed batches, driven by the clock. Nothing here knows about
// agents beyond their bare AgentId/AgentKind — behavior and state live
// in package agent.
package trace

import "github.com/nagacharan-tangirala/disolv/sim"

// MapState is a single agent's position at a point in time. Z, Velocity,
// and RoadID are optional: a trace row that omits those columns leaves
// the corresponding pointer nil rather than defaulting to zero, per
// spec.md §9's "missing velocity/road_id is nil, not Some(0)" decision.
type MapState struct {
	X, Y     float64
	Z        *float64
	Velocity *float64
	RoadID   *uint64
}

// Link is a directional edge from the querying agent to Target, produced
// by C2 per (source_kind, target_kind, time).
type Link struct {
	Target       sim.AgentId
	Distance     float64
	LoadFactor   float64
	HasDistance  bool
	HasLoad      bool
}

// KindPair keys the link map by (source kind, target kind) as configured
// in the run's link_files section.
type KindPair struct {
	Source sim.AgentKind
	Target sim.AgentKind
}
