package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything one clone run needs. Flags assemble it in
// cmd; an optional YAML file provides the same fields for repeatable
// runs; the API key always comes from the environment.
type Config struct {
	InputPath   string `yaml:"input"`
	OutputDir   string `yaml:"output"`
	Page        int    `yaml:"page"`
	DPI         int    `yaml:"dpi"`
	Workers     int    `yaml:"workers"`
	Model       string `yaml:"model"`
	SaveCrops   bool   `yaml:"save_crops"`
	SegmentOnly bool   `yaml:"segment_only"`
	PreviewAddr string `yaml:"preview_addr"`

	Segmenter SegmenterConfig `yaml:"segmenter"`

	// APIKey is environment-only, never serialized.
	APIKey string `yaml:"-"`

	BuildVersion string `yaml:"-"`
}

// SegmenterConfig mirrors the tunable constants of the segmentation
// core. Zero fields fall back to the core defaults.
type SegmenterConfig struct {
	WindowSize              int     `yaml:"window_size"`
	VarianceThreshold       float64 `yaml:"variance_threshold"`
	BrightnessDiffThreshold float64 `yaml:"brightness_diff_threshold"`
	PortionThreshold        float64 `yaml:"portion_threshold"`
	MaxDepth                int     `yaml:"max_depth"`
	MinSegmentSize          int     `yaml:"min_segment_size"`
}

// Default returns the runnable baseline configuration.
func Default() *Config {
	return &Config{
		OutputDir: "output",
		DPI:       144,
		Model:     "gemini-2.0-flash",
		Segmenter: SegmenterConfig{
			WindowSize:              3,
			VarianceThreshold:       50,
			BrightnessDiffThreshold: 30,
			PortionThreshold:        0.3,
			MaxDepth:                4,
			MinSegmentSize:          50,
		},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration back as YAML.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAPIKey resolves GEMINI_API_KEY, reading .env first when present so
// local runs need no exported variables.
func LoadAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("GEMINI_API_KEY")
}
