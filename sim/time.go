// Package sim provides the time and identity primitives shared by every
// other package in the simulation kernel: the millisecond clock T, agent
// identifiers, and the saturating Bytes/Latency/Bandwidth metric
// newtypes. Nothing in this package touches scheduling, trace I/O, or
// agent behavior — it is the leaf that everything else depends on.
package sim

import "math"

// T is a millisecond clock value. Arithmetic saturates rather than
// wrapping: subtracting past zero clamps to zero, adding past the u64
// range clamps to the max. Conversion from a signed integer clamps
// negatives to zero.
type T uint64

const MaxT T = math.MaxUint64

// TFromI64 clamps a signed seed (as read from config or a trace row)
// into a valid T.
func TFromI64(v int64) T {
	if v < 0 {
		return 0
	}
	return T(v)
}

func (t T) Add(d T) T {
	s := uint64(t) + uint64(d)
	if s < uint64(t) { // overflow
		return MaxT
	}
	return T(s)
}

func (t T) Sub(d T) T {
	if d > t {
		return 0
	}
	return t - d
}

func (t T) Less(o T) bool { return t < o }

// crossesBoundary reports whether the half-open interval (prev, cur]
// contains a multiple of interval — used to decide whether a streaming
// or output boundary was crossed advancing from prev to cur.
func crossesBoundary(prev, cur, interval T) bool {
	if interval == 0 {
		return false
	}
	return uint64(prev)/uint64(interval) != uint64(cur)/uint64(interval)
}

// CrossesBoundary is the exported form used by sched.
func CrossesBoundary(prev, cur, interval T) bool { return crossesBoundary(prev, cur, interval) }
