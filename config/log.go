package config

import "github.com/nagacharan-tangirala/disolv/cmn/nlog"

// ApplyLogging points cmn/nlog at log_settings.log_path and tags its
// rotated files with the scenario name. cmn/nlog has no per-severity
// verbosity filter (INFO/ERROR always go to their own files) and no
// overwrite-vs-append knob, so log_level and log_overwrite are accepted
// but unused — see DESIGN.md's Open Question decisions.
func (c *Config) ApplyLogging() {
	if c.LogSettings.Path != "" {
		nlog.SetLogDirRole(c.LogSettings.Path, "disolv")
	}
	if c.SimSettings.Scenario != "" {
		nlog.SetTitle(c.SimSettings.Scenario)
	}
}
