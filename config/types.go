// Package config loads and validates the hierarchical run document
// spec.md §6 describes, and builds a runnable Simulation from it.
package config

// LogSettings controls cmn/nlog's output directory and file name;
// log_level is parsed but not applied.
type LogSettings struct {
	Path      string `yaml:"log_path"`
	Level     string `yaml:"log_level"`
	FileName  string `yaml:"log_file_name"`
	Overwrite bool   `yaml:"log_overwrite"`
}

// SimSettings is simulation_settings — spec.md §6's scenario clock and
// seed.
type SimSettings struct {
	Scenario          string `yaml:"scenario"`
	Duration          uint64 `yaml:"duration"`
	StepSize          uint64 `yaml:"step_size"`
	StreamingInterval uint64 `yaml:"streaming_interval"`
	Seed              uint64 `yaml:"seed"`
}

// FileOutConfig names one of the six result sinks spec.md §6 names with
// an enabled flag. Build does not read these entries: all six sinks are
// always written.
type FileOutConfig struct {
	Kind    string `yaml:"kind"`
	Enabled *bool  `yaml:"enabled"`
}

// OutputSettings is output_settings — where and how often result sinks
// flush, and in what format.
type OutputSettings struct {
	OutputInterval uint64          `yaml:"output_interval"`
	OutputPath     string          `yaml:"output_path"`
	FileType       string          `yaml:"file_type"`
	BatchRows      int             `yaml:"batch_rows"`
	FileOutConfig  []FileOutConfig `yaml:"file_out_config"`
}

// FieldSettings is field_settings. Width and Height both > 0 turn on the
// bucket's spatial index (Bucket.Nearby); the values do not size it, and
// the selectors do not consult it.
type FieldSettings struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// SliceConfig is one entry of network_settings.slice[*].
type SliceConfig struct {
	ID           string `yaml:"id"`
	Bandwidth    uint64 `yaml:"bandwidth"`
	LatencyModel uint64 `yaml:"latency_model"`
}

// NetworkSettings is network_settings.
type NetworkSettings struct {
	Slices []SliceConfig `yaml:"slice"`
}

// MobilityFileConfig names one agent kind's position trace.
type MobilityFileConfig struct {
	Kind      string `yaml:"kind"`
	Dir       string `yaml:"dir"`
	Streaming bool   `yaml:"streaming"`
	Static    bool   `yaml:"static"`
	Window    uint64 `yaml:"window"`
}

// LinkFileConfig names one (source_kind, target_kind) link trace.
type LinkFileConfig struct {
	SourceKind string `yaml:"source_kind"`
	TargetKind string `yaml:"target_kind"`
	Dir        string `yaml:"dir"`
	Streaming  bool   `yaml:"streaming"`
	Window     uint64 `yaml:"window"`
}

// LinkRouteConfig tells the bucket which link file answers an agent's
// link_options(source_kind, target_class) query, since C2's files are
// keyed by target_kind rather than target_class.
type LinkRouteConfig struct {
	SourceKind  string `yaml:"source_kind"`
	TargetClass uint32 `yaml:"target_class"`
	TargetKind  string `yaml:"target_kind"`
}

// ActivationConfig is one activation window's on_times/off_times pair:
// On[i]/Off[i] open and close its i-th interval, and every agent of the
// node shares the same window.
type ActivationConfig struct {
	On  []uint64 `yaml:"on"`
	Off []uint64 `yaml:"off"`
}

// NodeConfig is one node_settings[*] / clients[*] / servers[*] entry:
// a population of `count` agents of one kind, sharing an activation
// window, tier, link/slice wiring, and policy names.
type NodeConfig struct {
	Name            string           `yaml:"name"`
	Kind            string           `yaml:"node_kind"`
	Class           uint32           `yaml:"node_class"`
	Order           int32            `yaml:"node_order"`
	Count           uint32           `yaml:"count"`
	Activation      ActivationConfig `yaml:"activation"`
	UplinkClasses   []uint32         `yaml:"uplink_classes"`
	SidelinkClasses []uint32         `yaml:"sidelink_classes"`
	SliceNames      []string         `yaml:"slice_names"`
	Selector        string           `yaml:"selector"`
	Composer        string           `yaml:"composer"`

	// Custom is a raw JSON object a domain composer/selector may stash
	// config in that the core has no business parsing (spec.md §6's
	// config document is YAML; this one field holds an embedded JSON
	// blob so domain code keeps its own schema instead of growing
	// NodeConfig). Decoded lazily via jsoniter in Build, see decodeCustom.
	Custom string `yaml:"custom"`
}

// Config is the top-level run document, spec.md §6's recognized keys.
type Config struct {
	LogSettings     LogSettings        `yaml:"log_settings"`
	SimSettings     SimSettings        `yaml:"simulation_settings"`
	OutputSettings  OutputSettings     `yaml:"output_settings"`
	FieldSettings   FieldSettings      `yaml:"field_settings"`
	NetworkSettings NetworkSettings    `yaml:"network_settings"`
	Mobility        []MobilityFileConfig `yaml:"mobility_files"`
	Links           []LinkFileConfig     `yaml:"link_files"`
	LinkRoutes      []LinkRouteConfig    `yaml:"link_routes"`
	Clients         []NodeConfig       `yaml:"clients"`
	Servers         []NodeConfig       `yaml:"servers"`
	BucketModels    map[string]any     `yaml:"bucket_models"`
}

// stepCount returns how many sim.T ticks duration spans, for callers
// that need a plain integer (e.g. progress reporting).
func (c *Config) stepCount() uint64 {
	if c.SimSettings.StepSize == 0 {
		return 0
	}
	return c.SimSettings.Duration / c.SimSettings.StepSize
}
