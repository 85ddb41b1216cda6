package stats

import (
	"path/filepath"

	"github.com/nagacharan-tangirala/disolv/agent"
	"github.com/nagacharan-tangirala/disolv/bucket"
	"github.com/nagacharan-tangirala/disolv/cmn/fname"
	"github.com/nagacharan-tangirala/disolv/cmn/nlog"
	"github.com/nagacharan-tangirala/disolv/sim"
	"github.com/nagacharan-tangirala/disolv/trace"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements bucket.StatsSink and agent.Telemetry against the
// six result sinks spec.md §6 names, plus a Prometheus registry mirroring
// the same counters, with exactly one output path (file + Prometheus).
type Recorder struct {
	txData    *batchWriter
	rxCounts  *batchWriter
	positions *batchWriter
	netStats  *batchWriter
	modelLog  *batchWriter
	payloads  *batchWriter

	prom *promMetrics
}

// Config names the six output files and shared format/batching knobs —
// output_settings in spec.md §6.
type Config struct {
	Dir       string
	FileType  FileType
	BatchRows int
}

// sinkName picks the msgpack, CSV, or JSON Lines filename constant
// cmn/fname defines for a result sink, per output_settings.file_type.
func sinkName(ft FileType, mpk, csvName, jsonName string) string {
	switch ft {
	case FileTypeCSV:
		return csvName
	case FileTypeJSON:
		return jsonName
	default:
		return mpk
	}
}

func New(cfg Config) (*Recorder, error) {
	mk := func(mpk, csvName, jsonName string) (*batchWriter, error) {
		return newBatchWriter(filepath.Join(cfg.Dir, sinkName(cfg.FileType, mpk, csvName, jsonName)), cfg.FileType, cfg.BatchRows)
	}
	txData, err := mk(fname.TxDataSink, fname.TxDataSinkCSV, fname.TxDataSinkJSON)
	if err != nil {
		return nil, err
	}
	rxCounts, err := mk(fname.RxCountsSink, fname.RxCountsSinkCSV, fname.RxCountsSinkJSON)
	if err != nil {
		return nil, err
	}
	positions, err := mk(fname.AgentPositionsSink, fname.AgentPositionsSinkCSV, fname.AgentPositionsSinkJSON)
	if err != nil {
		return nil, err
	}
	netStats, err := mk(fname.NetStatsSink, fname.NetStatsSinkCSV, fname.NetStatsSinkJSON)
	if err != nil {
		return nil, err
	}
	modelLog, err := mk(fname.ModelTraceSink, fname.ModelTraceSinkCSV, fname.ModelTraceSinkJSON)
	if err != nil {
		return nil, err
	}
	payloads, err := mk(fname.PayloadTraceSink, fname.PayloadTraceSinkCSV, fname.PayloadTraceSinkJSON)
	if err != nil {
		return nil, err
	}
	return &Recorder{
		txData: txData, rxCounts: rxCounts, positions: positions,
		netStats: netStats, modelLog: modelLog, payloads: payloads,
		prom: newPromMetrics(),
	}, nil
}

var (
	_ bucket.StatsSink = (*Recorder)(nil)
	_ agent.Telemetry  = (*Recorder)(nil)
)

// Registry exposes the Recorder's private Prometheus registry for
// gathering; nothing in this module serves it over HTTP.
func (r *Recorder) Registry() *prometheus.Registry { return r.prom.Registry }

func (r *Recorder) RecordTx(now sim.T, from, to sim.AgentId, size sim.Bytes, units uint32) {
	r.prom.txCount.Inc()
	r.prom.txBytes.Add(float64(size))
	if err := r.txData.add(row{
		header: []string{"time_step", "from_id", "to_id", "bytes", "units"},
		fields: []any{u64(now), uint64(from), uint64(to), uint64(size), units},
		csv:    []string{itoa(u64(now)), itoa(uint64(from)), itoa(uint64(to)), itoa(uint64(size)), itoa(uint64(units))},
	}); err != nil {
		nlog.Errorln("stats: tx-data:", err)
	}
}

func (r *Recorder) RecordRx(now sim.T, agentID sim.AgentId, payloads int, size sim.Bytes) {
	r.prom.rxCount.Add(float64(payloads))
	r.prom.rxBytes.Add(float64(size))
	if err := r.rxCounts.add(row{
		header: []string{"time_step", "agent_id", "payloads", "bytes"},
		fields: []any{u64(now), uint64(agentID), uint32(payloads), uint64(size)},
		csv:    []string{itoa(u64(now)), itoa(uint64(agentID)), itoa(uint64(payloads)), itoa(uint64(size))},
	}); err != nil {
		nlog.Errorln("stats: rx-counts:", err)
	}
}

func (r *Recorder) RecordPosition(now sim.T, agentID sim.AgentId, pos trace.MapState) {
	z, hasZ := 0.0, false
	if pos.Z != nil {
		z, hasZ = *pos.Z, true
	}
	if err := r.positions.add(row{
		header: []string{"time_step", "agent_id", "x", "y", "has_z", "z"},
		fields: []any{u64(now), uint64(agentID), pos.X, pos.Y, hasZ, z},
		csv:    []string{itoa(u64(now)), itoa(uint64(agentID)), ftoa(pos.X), ftoa(pos.Y), btoa(hasZ), ftoa(z)},
	}); err != nil {
		nlog.Errorln("stats: agent-positions:", err)
	}
}

func (r *Recorder) RecordSliceStats(now sim.T, name string, available, capacity sim.Bandwidth) {
	r.prom.sliceAvailable.WithLabelValues(name).Set(float64(available))
	if err := r.netStats.add(row{
		header: []string{"time_step", "slice", "available", "capacity"},
		fields: []any{u64(now), name, uint64(available), uint64(capacity)},
		csv:    []string{itoa(u64(now)), name, itoa(uint64(available)), itoa(uint64(capacity))},
	}); err != nil {
		nlog.Errorln("stats: net-stats:", err)
	}
}

func (r *Recorder) RecordModelEvent(now sim.T, agentID sim.AgentId, role, state, signal string) {
	if err := r.modelLog.add(row{
		header: []string{"time_step", "agent_id", "role", "state", "signal"},
		fields: []any{u64(now), uint64(agentID), role, state, signal},
		csv:    []string{itoa(u64(now)), itoa(uint64(agentID)), role, state, signal},
	}); err != nil {
		nlog.Errorln("stats: model-trace:", err)
	}
}

func (r *Recorder) RecordTransfer(now sim.T, report bucket.TransferReport) {
	status := "ok"
	if report.Status == bucket.TransferFailed {
		status = "failed"
		r.prom.transferFailed.Inc()
	}
	if err := r.payloads.add(row{
		header: []string{"time_step", "from_id", "status", "latency", "bandwidth"},
		fields: []any{u64(now), uint64(report.FromAgent), status, uint64(report.Latency), uint64(report.Bandwidth)},
		csv:    []string{itoa(u64(now)), itoa(uint64(report.FromAgent)), status, itoa(uint64(report.Latency)), itoa(uint64(report.Bandwidth))},
	}); err != nil {
		nlog.Errorln("stats: payload-trace:", err)
	}
}

// Flush drains every sink's pending batch — called from Bucket's
// StreamOutput hook.
func (r *Recorder) Flush() error {
	for _, w := range []*batchWriter{r.txData, r.rxCounts, r.positions, r.netStats, r.modelLog, r.payloads} {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes every sink — called from Bucket's Terminate.
func (r *Recorder) Close() error {
	for _, w := range []*batchWriter{r.txData, r.rxCounts, r.positions, r.netStats, r.modelLog, r.payloads} {
		if err := w.Close(); err != nil {
			return err
		}
	}
	return nil
}
