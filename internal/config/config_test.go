package config

import "testing"

func TestLoadAppliesDefaultsWithNoFile(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.DefaultResolution != 203 {
		t.Errorf("got default resolution %d, want 203", cfg.Render.DefaultResolution)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("got log level %q, want info", cfg.Logging.Level)
	}
	if cfg.App.Environment != "development" {
		t.Errorf("got environment %q, want development", cfg.App.Environment)
	}
}
