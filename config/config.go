// Package config loads the optional YAML simulation configuration
// file: plain exported fields with yaml tags, unmarshaled wholesale
// with gopkg.in/yaml.v3.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the simulation parameters that may be set from a file
// and overridden by CLI flags.
type Config struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	MemorySize  int     `yaml:"memory_size"`
	CounterBits int     `yaml:"counter_bits"`
	TargetHz    float64 `yaml:"target_hz"`
}

// Default returns the configuration a run uses when no file and no
// overriding flags are given.
func Default() Config {
	return Config{
		Width:       256,
		Height:      256,
		MemorySize:  128,
		CounterBits: 10,
		TargetHz:    1,
	}
}

// Load reads and parses a YAML configuration file, starting from
// Default() so a file only needs to set the fields it overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
