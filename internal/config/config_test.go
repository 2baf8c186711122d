package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSegmenterConstants(t *testing.T) {
	cfg := Default()

	s := cfg.Segmenter
	if s.WindowSize != 3 || s.VarianceThreshold != 50 || s.BrightnessDiffThreshold != 30 {
		t.Errorf("unexpected detector defaults: %+v", s)
	}
	if s.PortionThreshold != 0.3 || s.MaxDepth != 4 || s.MinSegmentSize != 50 {
		t.Errorf("unexpected subdivision defaults: %+v", s)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.InputPath = "input/screenshots/page.png"
	cfg.Workers = 6
	cfg.Segmenter.MaxDepth = 3
	cfg.APIKey = "secret"

	path := filepath.Join(t.TempDir(), "clone.yaml")
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.InputPath != cfg.InputPath || loaded.Workers != 6 || loaded.Segmenter.MaxDepth != 3 {
		t.Errorf("loaded config differs: %+v", loaded)
	}
	if loaded.APIKey != "" {
		t.Error("API key must never be serialized")
	}
	// Fields absent from the file keep their defaults.
	if loaded.Segmenter.MinSegmentSize != 50 {
		t.Errorf("MinSegmentSize = %d, want default 50", loaded.Segmenter.MinSegmentSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
