package agent

import "github.com/nagacharan-tangirala/disolv/bucket"

// Composer merges an agent's freshly generated units with whatever it
// is forwarding on behalf of others, into the units of one outgoing
// payload — spec.md §4.4 uplink step 4 ("external" composer).
type Composer interface {
	Compose(fresh, forwarded []bucket.DataUnit) []bucket.DataUnit
}

// ConcatComposer appends forwarded units after fresh ones. The default
// for every variant unless a domain model overrides it.
type ConcatComposer struct{}

func (ConcatComposer) Compose(fresh, forwarded []bucket.DataUnit) []bucket.DataUnit {
	out := make([]bucket.DataUnit, 0, len(fresh)+len(forwarded))
	out = append(out, fresh...)
	out = append(out, forwarded...)
	return out
}

// RelayComposer drops any fresh units and forwards only what it
// received — the composer a pure relay (e.g. an RSU with nothing of
// its own to say) configures.
type RelayComposer struct{}

func (RelayComposer) Compose(_, forwarded []bucket.DataUnit) []bucket.DataUnit {
	out := make([]bucket.DataUnit, len(forwarded))
	copy(out, forwarded)
	return out
}
