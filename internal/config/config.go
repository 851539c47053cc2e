// Package config loads and saves run configurations as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultRTol     = 1e-6
	DefaultATol     = 1e-9
)

type Config struct {
	Model     string             `yaml:"model"`
	Scheme    string             `yaml:"scheme"`
	Dt        float64            `yaml:"dt"`
	Duration  float64            `yaml:"duration"`
	InitState []float64          `yaml:"init_state,omitempty"`
	Params    map[string]float64 `yaml:"params,omitempty"`
	Adaptive  AdaptiveConfig     `yaml:"adaptive"`
	Sampling  SamplingConfig     `yaml:"sampling"`
}

// AdaptiveConfig mirrors the embedded controller settings; zero values
// fall back to the scheme defaults.
type AdaptiveConfig struct {
	InitialStep   float64 `yaml:"initial_step,omitempty"`
	RTol          float64 `yaml:"rtol"`
	ATol          float64 `yaml:"atol"`
	Safety        float64 `yaml:"safety,omitempty"`
	MinFactor     float64 `yaml:"min_factor,omitempty"`
	MaxFactor     float64 `yaml:"max_factor,omitempty"`
	MaxRejections int     `yaml:"max_rejections,omitempty"`
}

// SamplingConfig selects fixed-interval output; an empty align means
// "exact".
type SamplingConfig struct {
	Interval float64 `yaml:"interval,omitempty"`
	Align    string  `yaml:"align,omitempty"`
}

func Default() *Config {
	return &Config{
		Model:    "lorenz",
		Scheme:   "rk4",
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Adaptive: AdaptiveConfig{
			RTol: DefaultRTol,
			ATol: DefaultATol,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
