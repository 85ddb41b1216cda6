// Package stats implements the six result sinks spec.md §6 names
// (tx-data, rx-counts, agent-positions, net-stats, model-trace,
// payload-trace) plus the Prometheus registry a long-running simulation
// exposes alongside them — the result-writing half of bucket.StatsSink
// and agent.Telemetry.
package stats

import (
	"strconv"

	"github.com/nagacharan-tangirala/disolv/sim"
)

// TxDataRow is one row of the tx-data schema: a payload an agent handed
// off during Uplink/Sidelink.
type TxDataRow struct {
	TimeStep uint64
	FromID   uint64
	ToID     uint64
	Bytes    uint64
	Units    uint32
}

// RxCountRow is one row of the rx-counts schema: how much an agent took
// delivery of in a single step.
type RxCountRow struct {
	TimeStep uint64
	AgentID  uint64
	Payloads uint32
	Bytes    uint64
}

// AgentPositionRow is one row of the agent-positions schema, mirroring
// the mobility trace's own row shape so positions can be replayed the
// same way they were read.
type AgentPositionRow struct {
	TimeStep uint64
	AgentID  uint64
	X, Y     float64
	HasZ     bool
	Z        float64
}

// NetStatRow is one row of the net-stats schema, written once per
// network slice per step from bucket.StatsSink.RecordSliceStats.
type NetStatRow struct {
	TimeStep  uint64
	Slice     string
	Available uint64
	Capacity  uint64
}

// ModelTraceRow is one row of the model-trace schema: an FL
// client/server state-machine state, recorded once per agent per
// downlink, whether or not the state changed.
type ModelTraceRow struct {
	TimeStep uint64
	AgentID  uint64
	Role     string // "client" or "server"
	State    string
	Signal   string
}

// PayloadTraceRow is one row of the payload-trace schema: the outcome of
// a single delivery attempt, keyed by the transfer report spec.md §4.3
// already carries.
type PayloadTraceRow struct {
	TimeStep uint64
	FromID   uint64
	Status   string
	Latency  uint64
	Bandwidth uint64
}

func u64(t sim.T) uint64 { return uint64(t) }

func itoa(v uint64) string  { return strconv.FormatUint(v, 10) }
func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func btoa(v bool) string    { return strconv.FormatBool(v) }
