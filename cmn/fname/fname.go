// Package fname contains filename constants and naming conventions for
// trace shards, config files, and result sinks.
package fname

const (
	// run config
	GlobalConfig   = "disolv.yaml"
	OverrideConfig = "disolv.override.yaml"

	// trace shards, see trace/naming.go (discoverShards)
	TraceShardPattern = "part-%05d.mpk"
	TraceShardGlob    = "part-*.mpk"

	// result sinks, see stats
	TxDataSink        = "tx_data.mpk"
	RxCountsSink      = "rx_counts.mpk"
	AgentPositionsSink = "agent_positions.mpk"
	NetStatsSink      = "net_stats.mpk"
	ModelTraceSink    = "model_trace.mpk"
	PayloadTraceSink  = "payload_trace.mpk"

	// CSV variants of the above, selected via output_settings.file_type: csv
	TxDataSinkCSV        = "tx_data.csv"
	RxCountsSinkCSV      = "rx_counts.csv"
	AgentPositionsSinkCSV = "agent_positions.csv"
	NetStatsSinkCSV      = "net_stats.csv"
	ModelTraceSinkCSV    = "model_trace.csv"
	PayloadTraceSinkCSV  = "payload_trace.csv"

	// JSON Lines variants of the above, selected via output_settings.file_type: json
	TxDataSinkJSON        = "tx_data.jsonl"
	RxCountsSinkJSON      = "rx_counts.jsonl"
	AgentPositionsSinkJSON = "agent_positions.jsonl"
	NetStatsSinkJSON      = "net_stats.jsonl"
	ModelTraceSinkJSON    = "model_trace.jsonl"
	PayloadTraceSinkJSON  = "payload_trace.jsonl"
)
