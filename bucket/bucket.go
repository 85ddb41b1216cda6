package bucket

import (
	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

// StatsSink receives per-slice bandwidth utilization at the end of each
// step. The stats package implements this against its result sinks;
// nil is a valid, silent default during tests.
type StatsSink interface {
	RecordSliceStats(now sim.T, name string, available, capacity sim.Bandwidth)
}

// linkRoute resolves which configured (source_kind, target_kind) trace
// pair backs an agent's link_options(source_id, source_kind,
// target_class) query — spec.md §4.3 queries by target_class, but C2's
// link files are keyed by target_kind (see DESIGN.md's Open Question
// resolution), so the bucket keeps a small class→pair registry filled
// in at config time.
type linkRoute struct {
	sourceKind sim.AgentKind
	targetCls  sim.AgentClass
}

// Bucket is the single mutable rendezvous point described in spec.md
// §4.3: cached per-step positions/links pulled from the streaming
// trace reader, the payload/response data lake, and network slices.
type Bucket struct {
	now sim.T

	trace    *trace.Set
	dataLake *DataLake
	slices   map[string]*NetworkSlice
	stats    map[sim.AgentId]CommStats
	sink     StatsSink

	routes map[linkRoute]trace.KindPair

	positions map[sim.AgentKind]map[sim.AgentId]trace.MapState
	links     map[trace.KindPair]map[sim.AgentId][]trace.Link

	spatial *spatialIndex

	streamInputInterval  sim.T
	streamOutputInterval sim.T
}

func New(ts *trace.Set) *Bucket {
	return &Bucket{
		trace:     ts,
		dataLake:  NewDataLake(),
		slices:    map[string]*NetworkSlice{},
		stats:     map[sim.AgentId]CommStats{},
		routes:    map[linkRoute]trace.KindPair{},
		positions: map[sim.AgentKind]map[sim.AgentId]trace.MapState{},
		links:     map[trace.KindPair]map[sim.AgentId][]trace.Link{},
	}
}

func (b *Bucket) SetSink(sink StatsSink) { b.sink = sink }

func (b *Bucket) AddSlice(s *NetworkSlice) { b.slices[s.Name] = s }

func (b *Bucket) Slice(name string) (*NetworkSlice, bool) { s, ok := b.slices[name]; return s, ok }

// RouteLinks registers which trace.KindPair answers link_options calls
// from agents of sourceKind targeting targetClass.
func (b *Bucket) RouteLinks(sourceKind sim.AgentKind, targetClass sim.AgentClass, pair trace.KindPair) {
	b.routes[linkRoute{sourceKind: sourceKind, targetCls: targetClass}] = pair
}

func (b *Bucket) SetStreamIntervals(input, output sim.T) {
	b.streamInputInterval, b.streamOutputInterval = input, output
}

func (b *Bucket) Now() sim.T { return b.now }

//
// Scheduler-facing hooks
//

func (b *Bucket) Initialize(t0 sim.T) error {
	b.now = t0
	return b.trace.Init(t0)
}

// BeforeAgents sets the clock, resets network slices, drains payloads
// that have outlived their one-step grace period, and pulls this
// step's position/link caches from the trace reader.
func (b *Bucket) BeforeAgents(t sim.T) {
	b.now = t
	for _, s := range b.slices {
		s.Reset()
	}
	b.dataLake.Expire()

	clear(b.positions)
	clear(b.links)
	if b.spatial != nil {
		b.spatial.clear()
	}
	for _, kind := range b.trace.Kinds() {
		m := b.trace.TakeMobility(kind, t)
		b.positions[kind] = m
		if b.spatial != nil {
			for id, ms := range m {
				b.spatial.set(id, ms.X, ms.Y)
			}
		}
	}
	for _, pair := range b.trace.Pairs() {
		b.links[pair] = b.trace.TakeLinks(pair, t)
	}
}

// AfterAgents records each slice's remaining bandwidth to the sink.
func (b *Bucket) AfterAgents() {
	if b.sink == nil {
		return
	}
	for _, s := range b.slices {
		b.sink.RecordSliceStats(b.now, s.Name, s.Available(), s.Capacity)
	}
}

func (b *Bucket) StreamInput(t sim.T) error {
	nlog.Infof("bucket: streaming trace input at t=%d", t)
	return b.trace.Stream(t)
}

func (b *Bucket) StreamOutput(t sim.T) {
	nlog.Infof("bucket: flushing output sinks at t=%d", t)
	if flusher, ok := b.sink.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			nlog.Errorln("bucket: flush output:", err)
		}
	}
}

func (b *Bucket) Terminate(t sim.T) {
	nlog.Infof("bucket: terminating at t=%d", t)
	if closer, ok := b.sink.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			nlog.Errorln("bucket: close sink:", err)
		}
	}
	if b.spatial != nil {
		b.spatial.close()
	}
}

//
// Per-agent queries
//

// PositionOf destructively returns agent_id's cached position for this
// step, if the reader produced one.
func (b *Bucket) PositionOf(agentID sim.AgentId, kind sim.AgentKind) (trace.MapState, bool) {
	m, ok := b.positions[kind]
	if !ok {
		return trace.MapState{}, false
	}
	ms, ok := m[agentID]
	if ok {
		delete(m, agentID)
	}
	return ms, ok
}

// LinkOptions destructively returns the link candidates from sourceID
// (of sourceKind) towards targetClass, if any were configured/loaded.
func (b *Bucket) LinkOptions(sourceID sim.AgentId, sourceKind sim.AgentKind, targetClass sim.AgentClass) ([]trace.Link, bool) {
	pair, ok := b.routes[linkRoute{sourceKind: sourceKind, targetCls: targetClass}]
	if !ok {
		return nil, false
	}
	m, ok := b.links[pair]
	if !ok {
		return nil, false
	}
	links, ok := m[sourceID]
	if ok {
		delete(m, sourceID)
	}
	return links, ok
}

func (b *Bucket) PublishPayload(target sim.AgentId, p Payload) { b.dataLake.PublishPayload(target, p) }

func (b *Bucket) PublishResponse(target sim.AgentId, r Response) {
	b.dataLake.PublishResponse(target, r)
}

func (b *Bucket) TakePayloads(agentID sim.AgentId) []Payload { return b.dataLake.TakePayloads(agentID) }

func (b *Bucket) TakeResponse(agentID sim.AgentId) (Response, bool) {
	return b.dataLake.TakeResponse(agentID)
}

func (b *Bucket) RegisterStats(agentID sim.AgentId, stats CommStats) { b.stats[agentID] = stats }

func (b *Bucket) StatsOf(agentID sim.AgentId) (CommStats, bool) {
	s, ok := b.stats[agentID]
	return s, ok
}
