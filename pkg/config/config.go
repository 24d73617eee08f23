// Package config provides configuration loading and management for
// regiongrow3d. It handles loading configuration from YAML files and
// provides default values for the growers and the morphological clean-up.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"regiongrow3d/pkg/growing"
	"regiongrow3d/pkg/morphology"
)

// Segmentation method names accepted in configuration files.
const (
	MethodThreshold        = "threshold"
	MethodConfidence       = "confidence"
	MethodVectorConfidence = "vector-confidence"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Segmentation selects and parameterizes the region grower.
	Segmentation struct {
		// Method is one of threshold, confidence, vector-confidence.
		Method string `yaml:"method"`

		// Lower and Upper bound the fixed-threshold grower.
		Lower float64 `yaml:"lower"`
		Upper float64 `yaml:"upper"`

		// Multiplier is the confidence multiplier c for both adaptive growers.
		Multiplier float64 `yaml:"multiplier"`

		// Iterations is the number of statistics refinement rounds.
		Iterations int `yaml:"iterations"`

		// InitialRadius is the seed neighborhood radius for the scalar
		// confidence grower; the vector grower always samples seeds alone.
		InitialRadius int `yaml:"initialRadius"`

		// ReplaceValue is the label value written for segmented voxels.
		ReplaceValue float64 `yaml:"replaceValue"`

		// StrictSeedStats fails instead of degrading to an exact-match test
		// when the seed statistics carry no variance.
		StrictSeedStats bool `yaml:"strictSeedStats"`
	} `yaml:"segmentation"`

	// Cleanup parameterizes the optional morphological post-processing.
	Cleanup struct {
		// Opening removes components smaller than the element.
		Opening bool `yaml:"opening"`

		// Closing fills holes smaller than the element.
		Closing bool `yaml:"closing"`

		// Shape is one of ball, box, cross, annulus.
		Shape string `yaml:"shape"`

		// Radius applies to every axis unless Radii is set.
		Radius int `yaml:"radius"`

		// Radii optionally gives a per-axis radius vector (length 3).
		Radii []int `yaml:"radii,omitempty"`
	} `yaml:"cleanup"`

	// Output parameters.
	Output struct {
		// Verbose controls per-iteration progress reporting.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Segmentation.Method = MethodConfidence
	cfg.Segmentation.Lower = 0
	cfg.Segmentation.Upper = 255
	cfg.Segmentation.Multiplier = 2.5
	cfg.Segmentation.Iterations = 4
	cfg.Segmentation.InitialRadius = 1
	cfg.Segmentation.ReplaceValue = 1

	cfg.Cleanup.Opening = false
	cfg.Cleanup.Closing = true
	cfg.Cleanup.Shape = morphology.Ball.String()
	cfg.Cleanup.Radius = 1

	cfg.Output.Verbose = true

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// GrowerParams converts the segmentation section into grower parameters.
func (c *Config) GrowerParams(progress growing.Progress) growing.Params {
	return growing.Params{
		Multiplier:      c.Segmentation.Multiplier,
		Iterations:      c.Segmentation.Iterations,
		InitialRadius:   c.Segmentation.InitialRadius,
		ReplaceValue:    c.Segmentation.ReplaceValue,
		StrictSeedStats: c.Segmentation.StrictSeedStats,
		Progress:        progress,
	}
}

// CleanupElement materializes the configured structuring element, or nil if
// neither opening nor closing is enabled.
func (c *Config) CleanupElement() (*morphology.StructuringElement, error) {
	if !c.Cleanup.Opening && !c.Cleanup.Closing {
		return nil, nil
	}
	shape, err := morphology.ParseShape(c.Cleanup.Shape)
	if err != nil {
		return nil, err
	}
	if len(c.Cleanup.Radii) > 0 {
		if len(c.Cleanup.Radii) != 3 {
			return nil, fmt.Errorf("config: cleanup radii must have 3 components, got %d", len(c.Cleanup.Radii))
		}
		return morphology.NewStructuringElementRadii(shape,
			[3]int{c.Cleanup.Radii[0], c.Cleanup.Radii[1], c.Cleanup.Radii[2]})
	}
	return morphology.NewStructuringElement(shape, c.Cleanup.Radius)
}
