package stats

import "github.com/prometheus/client_golang/prometheus"

// promMetrics mirrors the file-backed counters with live Prometheus
// gauges/counters, following the naming convention
// stats/target_stats.go documents ("*.n" counter, "*.size" bytes,
// "*.ns" latency) translated to Prometheus's underscore style.
type promMetrics struct {
	Registry *prometheus.Registry

	txCount        prometheus.Counter
	txBytes        prometheus.Counter
	rxCount        prometheus.Counter
	rxBytes        prometheus.Counter
	sliceAvailable *prometheus.GaugeVec
	transferFailed prometheus.Counter
}

// newPromMetrics registers against a fresh, private Registry rather than
// prometheus's global DefaultRegisterer — each simulation run gets its
// own Recorder, and a test suite that builds several in one process must
// not collide on global collector names.
func newPromMetrics() *promMetrics {
	m := &promMetrics{Registry: prometheus.NewRegistry()}
	m.txCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "disolv", Name: "tx_total", Help: "total payloads transmitted",
	})
	m.txBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "disolv", Name: "tx_bytes_total", Help: "total bytes transmitted",
	})
	m.rxCount = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "disolv", Name: "rx_total", Help: "total payloads received",
	})
	m.rxBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "disolv", Name: "rx_bytes_total", Help: "total bytes received",
	})
	m.sliceAvailable = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "disolv", Name: "slice_available_bandwidth", Help: "remaining bandwidth by network slice",
	}, []string{"slice"})
	m.transferFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "disolv", Name: "transfer_failed_total", Help: "total feasibility-check failures",
	})
	m.Registry.MustRegister(m.txCount, m.txBytes, m.rxCount, m.rxBytes, m.sliceAvailable, m.transferFailed)
	return m
}
