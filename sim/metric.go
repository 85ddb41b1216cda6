package sim

import "math"

// Bytes, Latency, and Bandwidth are saturating u64 newtypes: addition
// clamps at the max instead of wrapping, subtraction clamps at zero
// instead of going negative. None of them ever carries a sign.
type (
	Bytes     uint64
	Latency   uint64 // milliseconds
	Bandwidth uint64 // bytes per step
)

const (
	MaxBytes     Bytes     = math.MaxUint64
	MaxLatency   Latency   = math.MaxUint64
	MaxBandwidth Bandwidth = math.MaxUint64
)

func (b Bytes) Add(o Bytes) Bytes {
	s := uint64(b) + uint64(o)
	if s < uint64(b) {
		return MaxBytes
	}
	return Bytes(s)
}

func (b Bytes) Sub(o Bytes) Bytes {
	if o > b {
		return 0
	}
	return b - o
}

func (l Latency) Add(o Latency) Latency {
	s := uint64(l) + uint64(o)
	if s < uint64(l) {
		return MaxLatency
	}
	return Latency(s)
}

func (l Latency) Sub(o Latency) Latency {
	if o > l {
		return 0
	}
	return l - o
}

func (bw Bandwidth) Add(o Bandwidth) Bandwidth {
	s := uint64(bw) + uint64(o)
	if s < uint64(bw) {
		return MaxBandwidth
	}
	return Bandwidth(s)
}

func (bw Bandwidth) Sub(o Bandwidth) Bandwidth {
	if o > bw {
		return 0
	}
	return bw - o
}

// FeasibilityStatus discriminates a Feasibility result.
type FeasibilityStatus uint8

const (
	Feasible FeasibilityStatus = iota
	InfeasibleLatency
	InfeasibleBandwidth
)

func (s FeasibilityStatus) String() string {
	switch s {
	case Feasible:
		return "feasible"
	case InfeasibleLatency:
		return "infeasible_latency"
	case InfeasibleBandwidth:
		return "infeasible_bandwidth"
	default:
		return "unknown"
	}
}

// Feasibility is the result of a network slice's Consume check: on
// success it carries the measured latency/bandwidth consumed; on
// failure it carries the value that exceeded the slice's budget so
// callers can report by how much the request missed.
type Feasibility struct {
	Status    FeasibilityStatus
	Measured  Bandwidth
	Exceeding Bandwidth
	Latency   Latency
}

func (f Feasibility) OK() bool { return f.Status == Feasible }

func FeasibleResult(measured Bandwidth, lat Latency) Feasibility {
	return Feasibility{Status: Feasible, Measured: measured, Latency: lat}
}

func InfeasibleResult(status FeasibilityStatus, exceeding Bandwidth, lat Latency) Feasibility {
	return Feasibility{Status: status, Exceeding: exceeding, Latency: lat}
}
