package bucket

import "github.com/nagacharan-tangirala/disolv/sim"

type payloadEntry struct {
	payload Payload
	gen     uint64
}

type responseEntry struct {
	response Response
	gen      uint64
}

// DataLake is the bucket's payload/response rendezvous: two FIFO queues
// keyed by target agent. A payload survives the step it was published
// in and exactly one more, per spec.md §3's "persists ... to the same
// or next step"; Expire drops anything older than that.
type DataLake struct {
	payloadsByTarget  map[sim.AgentId][]payloadEntry
	responsesByTarget map[sim.AgentId][]responseEntry
	gen               uint64
}

func NewDataLake() *DataLake {
	return &DataLake{
		payloadsByTarget:  map[sim.AgentId][]payloadEntry{},
		responsesByTarget: map[sim.AgentId][]responseEntry{},
	}
}

func (d *DataLake) PublishPayload(target sim.AgentId, p Payload) {
	d.payloadsByTarget[target] = append(d.payloadsByTarget[target], payloadEntry{payload: p, gen: d.gen})
}

func (d *DataLake) PublishResponse(target sim.AgentId, r Response) {
	d.responsesByTarget[target] = append(d.responsesByTarget[target], responseEntry{response: r, gen: d.gen})
}

// TakePayloads drains and returns all payloads queued for agent_id, in
// publish order.
func (d *DataLake) TakePayloads(agentID sim.AgentId) []Payload {
	entries, ok := d.payloadsByTarget[agentID]
	if !ok || len(entries) == 0 {
		return nil
	}
	out := make([]Payload, len(entries))
	for i, e := range entries {
		out[i] = e.payload
	}
	delete(d.payloadsByTarget, agentID)
	return out
}

// TakeResponse pops the oldest queued response for agent_id, or false
// if none is queued.
func (d *DataLake) TakeResponse(agentID sim.AgentId) (Response, bool) {
	entries, ok := d.responsesByTarget[agentID]
	if !ok || len(entries) == 0 {
		return Response{}, false
	}
	r := entries[0].response
	if len(entries) == 1 {
		delete(d.responsesByTarget, agentID)
	} else {
		d.responsesByTarget[agentID] = entries[1:]
	}
	return r, true
}

// Expire advances the generation counter and drops anything published
// before the previous generation — the "cleared at before_agents of the
// step that consumes them" rule, bounding a payload's lifetime to the
// step it was sent plus one.
func (d *DataLake) Expire() {
	d.gen++
	threshold := d.gen - 1
	for id, entries := range d.payloadsByTarget {
		kept := entries[:0]
		for _, e := range entries {
			if e.gen >= threshold {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(d.payloadsByTarget, id)
		} else {
			d.payloadsByTarget[id] = kept
		}
	}
	for id, entries := range d.responsesByTarget {
		kept := entries[:0]
		for _, e := range entries {
			if e.gen >= threshold {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			delete(d.responsesByTarget, id)
		} else {
			d.responsesByTarget[id] = kept
		}
	}
}
