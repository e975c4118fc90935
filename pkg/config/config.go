// Package config provides configuration loading and management for strataslice.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"strataslice/internal/models"
	"strataslice/pkg/section"
)

// Limit is an optional slicing bound; a nil end falls back to the extent
type Limit struct {
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`
}

// Apply overrides the ends of r that are set
func (l Limit) Apply(r models.Range) models.Range {
	if l.Min != nil {
		r.Min = *l.Min
	}
	if l.Max != nil {
		r.Max = *l.Max
	}
	return r
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Input surfaces, one CSV grid per layer
	Input struct {
		// Lower is the bottom-most surface
		Lower string `yaml:"lower"`

		// Central is the middle surface; it defines the X and Y extents
		Central string `yaml:"central"`

		// Upper is the top-most surface
		Upper string `yaml:"upper"`
	} `yaml:"input"`

	// Slicing parameters
	Slice struct {
		// Inclusive keeps values equal to a bound instead of masking them
		Inclusive bool `yaml:"inclusive"`

		// X, Y and Z set the initial bounds; unset ends use the extent
		X Limit `yaml:"x"`
		Y Limit `yaml:"y"`
		Z Limit `yaml:"z"`
	} `yaml:"slice"`

	// Output parameters
	Output struct {
		// Dir receives every rendered file
		Dir string `yaml:"dir"`

		// HTML is the file name of the interactive 3D chart
		HTML string `yaml:"html"`

		// Heatmaps writes a PNG heat map per layer
		Heatmaps bool `yaml:"heatmaps"`

		// ProfileAxes lists the axes to write cross-section sequences along
		ProfileAxes []string `yaml:"profileAxes,omitempty"`

		// STL is the file name of the mesh export; empty disables it
		STL string `yaml:"stl"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`

	// Rendering parameters
	Render struct {
		Title string `yaml:"title"`

		// Width and Height size the HTML chart in pixels
		Width  int `yaml:"width"`
		Height int `yaml:"height"`

		// Theme is the echarts theme name
		Theme string `yaml:"theme"`

		// PlotWidth and PlotHeight size PNG outputs in inches
		PlotWidth  float64 `yaml:"plotWidth"`
		PlotHeight float64 `yaml:"plotHeight"`
	} `yaml:"render"`

	// Interactive viewer parameters
	View struct {
		// AutoWrite rewrites the HTML chart after every slider change
		AutoWrite bool `yaml:"autoWrite"`

		// Watch reloads the surfaces when an input file changes
		Watch bool `yaml:"watch"`
	} `yaml:"view"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Input.Lower = "surfaces/in_lower.txt"
	cfg.Input.Central = "surfaces/in.txt"
	cfg.Input.Upper = "surfaces/in_upper.txt"

	// Values sitting exactly on a bound are hidden
	cfg.Slice.Inclusive = false

	cfg.Output.Dir = "output"
	cfg.Output.HTML = "surfaces.html"
	cfg.Output.Heatmaps = true
	cfg.Output.ProfileAxes = nil
	cfg.Output.STL = ""
	cfg.Output.Verbose = false

	cfg.Render.Title = "Surfaces"
	cfg.Render.Width = 900
	cfg.Render.Height = 700
	cfg.Render.Theme = "white"
	cfg.Render.PlotWidth = 8
	cfg.Render.PlotHeight = 6

	cfg.View.AutoWrite = false
	cfg.View.Watch = false

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
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

// SaveConfig saves the configuration to a YAML file
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

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Paths returns the input files as section paths
func (c *Config) Paths() section.Paths {
	return section.Paths{
		Lower:   c.Input.Lower,
		Central: c.Input.Central,
		Upper:   c.Input.Upper,
	}
}

// Bounds applies the configured limits on top of the section extent
func (c *Config) Bounds(e models.Extent) models.Bounds {
	return models.Bounds{
		X: c.Slice.X.Apply(e.X),
		Y: c.Slice.Y.Apply(e.Y),
		Z: c.Slice.Z.Apply(e.Z),
	}
}
