// Package config loads judge-wide settings: where to find the cell binary,
// the default seccomp profile, and logging options.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings that apply across every problem the judge runs.
// Unlike problem.Config (per-problem limits and cases), this is ambient:
// loaded once per process invocation.
type Config struct {
	CellPath       string `yaml:"cell_path,omitempty"`
	DefaultProfile string `yaml:"default_profile,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty"`
	LogFile        string `yaml:"log_file,omitempty"`
}

func defaults() Config {
	return Config{
		DefaultProfile: "minimum",
		LogLevel:       "info",
	}
}

// Load reads ~/.tank/config.yaml if present and overlays it onto the
// defaults, then applies environment overrides. Missing files are not an
// error — the judge runs fine on defaults alone.
func Load() (Config, error) {
	cfg := defaults()

	dir, err := UserConfigDir()
	if err == nil {
		if data, err := os.ReadFile(dir + "/config.yaml"); err == nil {
			var fromFile Config
			if err := yaml.Unmarshal(data, &fromFile); err != nil {
				return cfg, err
			}
			cfg = mergeOverride(cfg, fromFile)
		}
	}

	if v := os.Getenv("TANK_CELL_PATH"); v != "" {
		cfg.CellPath = v
	}
	if v := os.Getenv("TANK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// mergeOverride applies non-zero fields of override onto base, the same
// last-writer-wins-per-field shape as a layered settings.json merge.
func mergeOverride(base, override Config) Config {
	if override.CellPath != "" {
		base.CellPath = override.CellPath
	}
	if override.DefaultProfile != "" {
		base.DefaultProfile = override.DefaultProfile
	}
	if override.LogLevel != "" {
		base.LogLevel = override.LogLevel
	}
	if override.LogFile != "" {
		base.LogFile = override.LogFile
	}
	return base
}
