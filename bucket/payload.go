// Package bucket implements the single mutable rendezvous point agents
// read and write through each step: cached positions and links pulled
// from the streaming trace reader, the payload/response data lake, and
// per-slice bandwidth accounting.
package bucket

import (
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
)

// Action says what a receiving agent must do with a data unit. Consume
// and Forward are universal; domain packages define their own values
// starting at ActionDomainBase (e.g. an FL package's "apply update").
type Action uint8

const (
	ActionConsume Action = iota
	ActionForward
	ActionDomainBase
)

// QueryType discriminates a payload's intent so the receiver can
// dispatch without inspecting every unit.
type QueryType uint8

const (
	QuerySense QueryType = iota
	QueryControl
	QueryModelUpdate
	QueryDomainBase
)

// RoutingHint narrows which receivers a DataUnit is meant for. At most
// one of ToAgent/ToClass/ToKind is meaningful unless ToBroadcast is set.
type RoutingHint struct {
	ToAgent     sim.AgentId
	HasAgent    bool
	ToClass     sim.AgentClass
	HasClass    bool
	ToKind      sim.AgentKind
	HasKind     bool
	ToBroadcast bool
}

// Matches reports whether a receiver with the given identity is an
// eligible target of this hint.
func (h RoutingHint) Matches(id sim.AgentId, class sim.AgentClass, kind sim.AgentKind) bool {
	if h.ToBroadcast {
		return true
	}
	if h.HasAgent && h.ToAgent == id {
		return true
	}
	if h.HasClass && h.ToClass == class {
		return true
	}
	if h.HasKind && h.ToKind == kind {
		return true
	}
	return false
}

// DataUnit is one typed content item inside a Payload.
type DataUnit struct {
	Size        sim.Bytes
	ContentType string
	Action      Action
	Route       RoutingHint
}

// AgentState is a snapshot of the sender taken at send-time.
type AgentState struct {
	ID       sim.AgentId
	Class    sim.AgentClass
	Kind     sim.AgentKind
	Position trace.MapState
}

// Metadata carries the payload's size/count accounting plus the link
// selected to carry it. TotalSize and TotalCount must stay consistent
// with Units — see Payload.Validate.
type Metadata struct {
	TotalSize    sim.Bytes
	TotalCount   uint32
	SelectedLink *trace.Link
	Policy       map[string]Action // by ContentType
}

// Payload is the unit of agent-to-agent communication.
type Payload struct {
	Metadata  Metadata
	Sender    AgentState
	Units     []DataUnit
	QueryType QueryType
}

// NewPayload builds a payload from units, deriving Metadata.TotalSize
// and TotalCount so the conservation invariant holds by construction.
func NewPayload(sender AgentState, qt QueryType, units []DataUnit) Payload {
	p := Payload{Sender: sender, QueryType: qt, Units: units}
	p.recomputeMetadata()
	return p
}

func (p *Payload) recomputeMetadata() {
	var size sim.Bytes
	for _, u := range p.Units {
		size = size.Add(u.Size)
	}
	p.Metadata.TotalSize = size
	p.Metadata.TotalCount = uint32(len(p.Units))
}

// Validate checks the conservation invariants from the data model:
// TotalSize == sum(unit.Size) and TotalCount == len(Units).
func (p *Payload) Validate() bool {
	var size sim.Bytes
	for _, u := range p.Units {
		size = size.Add(u.Size)
	}
	return size == p.Metadata.TotalSize && int(p.Metadata.TotalCount) == len(p.Units)
}

// ResolveActions rewrites Forward units addressed to self into Consume,
// then drops every Consume unit, decrementing TotalSize/TotalCount to
// match — the "action resolution on receipt" step run before domain
// code inspects a payload's units.
func (p *Payload) ResolveActions(self sim.AgentId, class sim.AgentClass, kind sim.AgentKind) {
	kept := p.Units[:0]
	for _, u := range p.Units {
		if u.Action == ActionForward && u.Route.Matches(self, class, kind) {
			u.Action = ActionConsume
		}
		if u.Action == ActionConsume {
			continue
		}
		kept = append(kept, u)
	}
	p.Units = kept
	p.recomputeMetadata()
}

// TransferStatus is the outcome recorded in a TransferReport.
type TransferStatus uint8

const (
	TransferOK TransferStatus = iota
	TransferFailed
)

// TransferReport summarizes how a payload's delivery attempt went.
type TransferReport struct {
	Status     TransferStatus
	FailReason string
	FromAgent  sim.AgentId
	TxOrder    int
	Latency    sim.Latency
	Bandwidth  sim.Bandwidth
}

// Response is the reply to a Payload, keyed by the origin agent so the
// sender's downlink can pick it back up.
type Response struct {
	Origin  sim.AgentId
	Report  TransferReport
	Content any
}

// CommStats is the per-agent running tally registered via
// Bucket.RegisterStats and read back via Bucket.StatsOf.
type CommStats struct {
	TxCount     uint64
	RxCount     uint64
	TxBytes     sim.Bytes
	RxBytes     sim.Bytes
	LastLatency sim.Latency
}
