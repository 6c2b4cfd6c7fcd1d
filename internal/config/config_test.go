package config

import "testing"

func TestMergeOverride(t *testing.T) {
	base := defaults()
	override := Config{LogLevel: "debug"}

	got := mergeOverride(base, override)

	if got.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", got.LogLevel, "debug")
	}
	if got.DefaultProfile != base.DefaultProfile {
		t.Errorf("DefaultProfile changed unexpectedly: got %q, want %q", got.DefaultProfile, base.DefaultProfile)
	}
}

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.DefaultProfile != "minimum" {
		t.Errorf("DefaultProfile = %q, want %q", cfg.DefaultProfile, "minimum")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}
