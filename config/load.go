package config

import (
	"fmt"
	"os"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the run document at path. Parsing or
// validation failures wrap in cos.ConfigError, per spec.md §6's
// "parsing failures abort before simulation start".
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, cos.NewConfigError(path, errors.Wrap(err, "read"))
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, cos.NewConfigError(path, errors.Wrap(err, "parse"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, cos.NewConfigError(path, err)
	}
	return &cfg, nil
}

// Validate checks the structural invariants Build relies on: a nonzero
// clock, slices with an id and nonzero bandwidth, nodes with a nonzero
// count and a known kind, and well-formed activation windows. It does
// not check that a node's slice_names refer to configured slices. It
// does not reach into the filesystem — missing trace/mobility
// directories surface later, from the trace readers' Init.
func (c *Config) Validate() error {
	if c.SimSettings.Duration == 0 {
		return errors.New("simulation_settings.duration must be > 0")
	}
	if c.SimSettings.StepSize == 0 {
		return errors.New("simulation_settings.step_size must be > 0")
	}
	if c.SimSettings.Duration%c.SimSettings.StepSize != 0 {
		return errors.New("simulation_settings.duration must be a multiple of step_size")
	}
	for _, s := range c.NetworkSettings.Slices {
		if s.ID == "" {
			return errors.New("network_settings.slice entries require an id")
		}
		if s.Bandwidth == 0 {
			return fmt.Errorf("network_settings.slice %q: bandwidth must be > 0", s.ID)
		}
	}
	for _, nodes := range [][]NodeConfig{c.Clients, c.Servers} {
		for _, n := range nodes {
			if n.Count == 0 {
				return fmt.Errorf("node %q: count must be > 0", n.Name)
			}
			if _, err := parseAgentKind(n.Kind); err != nil {
				return fmt.Errorf("node %q: %w", n.Name, err)
			}
			if err := validateActivation(n.Activation); err != nil {
				return fmt.Errorf("node %q: %w", n.Name, err)
			}
		}
	}
	return nil
}

func validateActivation(a ActivationConfig) error {
	if len(a.On) != len(a.Off) {
		return fmt.Errorf("activation: %d on-times but %d off-times", len(a.On), len(a.Off))
	}
	for i := range a.On {
		if a.On[i] >= a.Off[i] {
			return fmt.Errorf("activation: on[%d]=%d must be < off[%d]=%d", i, a.On[i], i, a.Off[i])
		}
		if i+1 < len(a.On) && a.Off[i] > a.On[i+1] {
			return fmt.Errorf("activation: off[%d]=%d must be <= on[%d]=%d", i, a.Off[i], i+1, a.On[i+1])
		}
	}
	return nil
}
