package agent

import (
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

// Agent is the capability set every scheduled entity implements —
// spec.md §4.4's "polymorphic over {uplink_stage, sidelink_stage,
// downlink_stage, is_stopped, activation_window}".
type Agent interface {
	ID() sim.AgentId
	Class() sim.AgentClass
	Kind() sim.AgentKind
	Order() sim.AgentOrder
	Activation() sim.ActivationWindow
	IsStopped() bool

	Uplink(b *bucket.Bucket)
	Sidelink(b *bucket.Bucket)
	Downlink(b *bucket.Bucket)
}

// Producer supplies an agent's freshly generated data units for a
// target class — the domain-specific sensing/model-update step that
// precedes composition.
type Producer func(b *bucket.Bucket, targetClass sim.AgentClass) []bucket.DataUnit

// Responder is invoked with the response waiting for this agent, if
// any, at downlink time.
type Responder func(b *bucket.Bucket, self *Radio, resp bucket.Response)

// Reactor optionally reacts to this agent's own failed outgoing
// transfers of the current step. Successful transfers, and deliveries
// other agents made to this agent, are not reported to it.
type Reactor func(b *bucket.Bucket, self *Radio, reports []bucket.TransferReport)

// Telemetry receives the raw per-agent communication events a Radio
// produces each step, for result recording (the stats package implements
// this against its tx-data/rx-counts writers). Nil is a valid, silent
// default during tests.
type Telemetry interface {
	RecordTx(now sim.T, from, to sim.AgentId, size sim.Bytes, units uint32)
	RecordRx(now sim.T, agentID sim.AgentId, payloads int, size sim.Bytes)
	RecordPosition(now sim.T, agentID sim.AgentId, pos trace.MapState)
	RecordTransfer(now sim.T, report bucket.TransferReport)
	RecordModelEvent(now sim.T, agentID sim.AgentId, role, state, signal string)
}

// Radio is the shared protocol engine every concrete agent variant
// embeds: it is the part of spec.md §4.4's uplink/sidelink/downlink
// algorithm that does not vary by domain, parameterized by the
// Composer/Selector/Producer/Responder/Reactor an agent is configured
// with.
type Radio struct {
	id    sim.AgentId
	class sim.AgentClass
	kind  sim.AgentKind
	order sim.AgentOrder
	win   sim.ActivationWindow

	UplinkClasses   []sim.AgentClass
	SidelinkClasses []sim.AgentClass
	SliceNames      []string

	Composer  Composer
	Selector  Selector
	Producer  Producer
	Policy    map[string]bucket.Action
	Responder Responder
	Reactor   Reactor
	Telemetry Telemetry

	stopped bool
	pos     trace.MapState
	stats   bucket.CommStats

	pending []bucket.TransferReport
}

func NewRadio(id sim.AgentId, class sim.AgentClass, kind sim.AgentKind, order sim.AgentOrder, win sim.ActivationWindow) *Radio {
	return &Radio{
		id: id, class: class, kind: kind, order: order, win: win,
		Composer: ConcatComposer{}, Selector: NearestSelector{},
	}
}

func (r *Radio) ID() sim.AgentId                   { return r.id }
func (r *Radio) Class() sim.AgentClass             { return r.class }
func (r *Radio) Kind() sim.AgentKind               { return r.kind }
func (r *Radio) Order() sim.AgentOrder             { return r.order }
func (r *Radio) Activation() sim.ActivationWindow  { return r.win }
func (r *Radio) IsStopped() bool                   { return r.stopped }
func (r *Radio) Stop()                             { r.stopped = true }
func (r *Radio) Position() trace.MapState          { return r.pos }

// Uplink runs spec.md §4.4's seven-step uplink sequence for every
// configured target class.
func (r *Radio) Uplink(b *bucket.Bucket) { r.runStage(b, r.UplinkClasses) }

// Sidelink is structurally identical, restricted to peer-class
// targets, run after Uplink within the same tier.
func (r *Radio) Sidelink(b *bucket.Bucket) { r.runStage(b, r.SidelinkClasses) }

func (r *Radio) runStage(b *bucket.Bucket, classes []sim.AgentClass) {
	if ms, ok := b.PositionOf(r.id, r.kind); ok {
		r.pos = ms
		if r.Telemetry != nil {
			r.Telemetry.RecordPosition(b.Now(), r.id, ms)
		}
	}

	incoming := b.TakePayloads(r.id)
	forwardByClass := map[sim.AgentClass][]bucket.DataUnit{}
	var rxBytes sim.Bytes
	for i := range incoming {
		r.stats.RxCount += uint64(incoming[i].Metadata.TotalCount)
		rxBytes = rxBytes.Add(incoming[i].Metadata.TotalSize)

		incoming[i].ResolveActions(r.id, r.class, r.kind)
		// whatever ResolveActions left behind was not addressed to self
		// and was not dropped as Consume, so it's a forwarding candidate
		for _, u := range incoming[i].Units {
			for _, cls := range classes {
				if u.Route.ToBroadcast || (u.Route.HasClass && u.Route.ToClass == cls) {
					forwardByClass[cls] = append(forwardByClass[cls], u)
				}
			}
		}
	}
	if len(incoming) > 0 {
		r.stats.RxBytes = r.stats.RxBytes.Add(rxBytes)
		if r.Telemetry != nil {
			r.Telemetry.RecordRx(b.Now(), r.id, len(incoming), rxBytes)
		}
	}

	for _, cls := range classes {
		links, ok := b.LinkOptions(r.id, r.kind, cls)
		if !ok || len(links) == 0 {
			continue
		}
		var fresh []bucket.DataUnit
		if r.Producer != nil {
			fresh = r.Producer(b, cls)
		}
		units := r.Composer.Compose(fresh, forwardByClass[cls])
		if len(units) == 0 {
			continue
		}
		payload := bucket.NewPayload(bucket.AgentState{ID: r.id, Class: r.class, Kind: r.kind, Position: r.pos}, bucket.QuerySense, units)
		r.applyPolicy(&payload)

		link, ok := r.Selector.Select(r.id, links)
		if !ok {
			continue
		}
		payload.Metadata.SelectedLink = &link

		if !r.checkFeasible(b, payload.Metadata, link) {
			continue
		}
		b.PublishPayload(link.Target, payload)

		r.stats.TxCount++
		r.stats.TxBytes = r.stats.TxBytes.Add(payload.Metadata.TotalSize)
		r.stats.LastLatency = estimatedLatency(link)
		if r.Telemetry != nil {
			r.Telemetry.RecordTx(b.Now(), r.id, link.Target, payload.Metadata.TotalSize, payload.Metadata.TotalCount)
		}
	}
	b.RegisterStats(r.id, r.stats)
}

// estimatedLatency is a simple propagation-delay-proportional-to-
// distance model; channel/propagation modeling proper is out of scope
// (spec.md §1 Non-goals) — this only needs to be monotonic in distance
// for the feasibility check to mean anything.
func estimatedLatency(link trace.Link) sim.Latency {
	return sim.Latency(link.Distance)
}

func (r *Radio) applyPolicy(p *bucket.Payload) {
	if r.Policy == nil {
		return
	}
	for i := range p.Units {
		if a, ok := r.Policy[p.Units[i].ContentType]; ok {
			p.Units[i].Action = a
		}
	}
}

// failReason maps a slice's feasibility status to spec.md §7's transfer
// report reason string (LatencyLimit | NoBandwidth | None).
func failReason(status sim.FeasibilityStatus) string {
	switch status {
	case sim.InfeasibleLatency:
		return "LatencyLimit"
	case sim.InfeasibleBandwidth:
		return "NoBandwidth"
	default:
		return "None"
	}
}

func (r *Radio) checkFeasible(b *bucket.Bucket, meta bucket.Metadata, link trace.Link) bool {
	latency := estimatedLatency(link)
	for _, name := range r.SliceNames {
		slice, ok := b.Slice(name)
		if !ok {
			continue
		}
		feas := slice.Consume(meta, latency)
		if !feas.OK() {
			report := bucket.TransferReport{Status: bucket.TransferFailed, FromAgent: r.id, Latency: latency, FailReason: failReason(feas.Status)}
			r.pending = append(r.pending, report)
			if r.Telemetry != nil {
				r.Telemetry.RecordTransfer(b.Now(), report)
			}
			return false
		}
	}
	report := bucket.TransferReport{Status: bucket.TransferOK, FromAgent: r.id, Latency: latency, Bandwidth: sim.Bandwidth(meta.TotalSize)}
	if r.Telemetry != nil {
		r.Telemetry.RecordTransfer(b.Now(), report)
	}
	return true
}

// Downlink takes this agent's queued response (if any) and hands it to
// Responder, then hands Reactor the failed transfer reports this agent's
// Uplink/Sidelink recorded earlier in the same step, and clears them.
func (r *Radio) Downlink(b *bucket.Bucket) {
	if resp, ok := b.TakeResponse(r.id); ok && r.Responder != nil {
		r.Responder(b, r, resp)
	}
	if r.Reactor != nil && len(r.pending) > 0 {
		r.Reactor(b, r, r.pending)
	}
	r.pending = nil
}
