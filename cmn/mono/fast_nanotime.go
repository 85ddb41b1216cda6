// Package mono provides low-level monotonic wall-clock access used for
// log rotation timing and other ambient bookkeeping. It never drives
// simulated time — that is owned entirely by sim.T and the scheduler.
package mono

import (
	_ "unsafe" // for go:linkname
)

// NanoTime returns the monotonic clock reading in nanoseconds, independent
// of wall-clock adjustments.
//
//go:linkname NanoTime runtime.nanotime
func NanoTime() int64
