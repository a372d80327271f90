package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/random-shapes/internal/imaging"
	"github.com/ironsheep/random-shapes/internal/shapes"
)

// Defaults applied by DefaultConfig. Fields left out of a YAML file keep
// these values.
const (
	DefaultRows      = 128
	DefaultCols      = 128
	DefaultMaxShapes = 5
	DefaultCount     = 10
	DefaultWorkers   = 4
	DefaultOutput    = "dataset"
)

// ImageConfig describes how each image is generated. It mirrors
// shapes.Options with serializable field names and is shared by the dataset
// config, the CLI and the MCP server.
type ImageConfig struct {
	Rows            int                     `json:"rows" yaml:"rows"`
	Cols            int                     `json:"cols" yaml:"cols"`
	MinShapes       int                     `json:"min_shapes" yaml:"min_shapes"`
	MaxShapes       int                     `json:"max_shapes" yaml:"max_shapes"`
	MinSize         int                     `json:"min_size" yaml:"min_size"`
	MaxSize         int                     `json:"max_size,omitempty" yaml:"max_size"`
	Multichannel    bool                    `json:"multichannel" yaml:"multichannel"`
	Channels        int                     `json:"channels" yaml:"channels"`
	Shape           string                  `json:"shape,omitempty" yaml:"shape"`
	Scenario        shapes.Scenario         `json:"scenario,omitempty" yaml:"scenario"`
	Distribution    *shapes.Distribution    `json:"distribution,omitempty" yaml:"distribution"`
	IntensityRanges []shapes.IntensityRange `json:"intensity_ranges,omitempty" yaml:"intensity_ranges"`
	AllowOverlap    bool                    `json:"allow_overlap" yaml:"allow_overlap"`
	Trials          int                     `json:"trials" yaml:"trials"`
	EnableEllipse   bool                    `json:"enable_ellipse" yaml:"enable_ellipse"`
}

// DefaultImageConfig returns the engine defaults for a 128×128 canvas.
func DefaultImageConfig() ImageConfig {
	opts := shapes.DefaultOptions(DefaultRows, DefaultCols, DefaultMaxShapes)
	return ImageConfig{
		Rows:         opts.Rows,
		Cols:         opts.Cols,
		MinShapes:    opts.MinShapes,
		MaxShapes:    opts.MaxShapes,
		MinSize:      opts.MinSize,
		MaxSize:      opts.MaxSize,
		Multichannel: opts.Multichannel,
		Channels:     opts.Channels,
		Scenario:     opts.Scenario,
		Trials:       opts.Trials,
	}
}

// Options converts the config into engine options for one seeded run.
func (c ImageConfig) Options(seed uint64, logger *log.Logger) shapes.Options {
	return shapes.Options{
		Rows:            c.Rows,
		Cols:            c.Cols,
		MinShapes:       c.MinShapes,
		MaxShapes:       c.MaxShapes,
		MinSize:         c.MinSize,
		MaxSize:         c.MaxSize,
		Multichannel:    c.Multichannel,
		Channels:        c.Channels,
		Shape:           c.Shape,
		Scenario:        c.Scenario,
		Distribution:    c.Distribution,
		IntensityRanges: c.IntensityRanges,
		AllowOverlap:    c.AllowOverlap,
		Trials:          c.Trials,
		Seed:            shapes.Seeded(seed),
		EnableEllipse:   c.EnableEllipse,
		Logger:          logger,
	}
}

// CropConfig controls per-label crop output.
type CropConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Padding int     `json:"padding" yaml:"padding"`
	Scale   float64 `json:"scale" yaml:"scale"`
}

// Config describes one dataset run.
//
// # Example
//
//	output: ./shapes-train
//	count: 500
//	seed: 42
//	workers: 8
//	previews: true
//	image:
//	  rows: 64
//	  cols: 64
//	  max_shapes: 4
//	  scenario: all-core
//	crops:
//	  enabled: true
//	  padding: 2
type Config struct {
	// Output is the dataset root directory. It is created if missing.
	Output string `json:"output" yaml:"output"`

	// Count is the number of samples to generate.
	Count int `json:"count" yaml:"count"`

	// Seed is the base seed; sample i uses Seed+i. Nil draws a base seed,
	// which is recorded in the manifest.
	Seed *uint64 `json:"seed,omitempty" yaml:"seed"`

	// Workers bounds how many samples are generated at once.
	Workers int `json:"workers" yaml:"workers"`

	Image ImageConfig `json:"image" yaml:"image"`

	// Previews writes a copy of each image with labeled boxes drawn on it.
	Previews bool `json:"previews" yaml:"previews"`

	// OverlayColor is the preview box color as "#RRGGBB".
	OverlayColor string `json:"overlay_color" yaml:"overlay_color"`

	Crops CropConfig `json:"crops" yaml:"crops"`
}

// DefaultConfig returns a config with every field at its default.
func DefaultConfig() Config {
	return Config{
		Output:       DefaultOutput,
		Count:        DefaultCount,
		Workers:      DefaultWorkers,
		Image:        DefaultImageConfig(),
		OverlayColor: imaging.DefaultOverlayColor,
		Crops:        CropConfig{Padding: 0, Scale: 1.0},
	}
}

// ParseConfig decodes a YAML config on top of DefaultConfig. Unknown keys are
// rejected.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the dataset-level fields. Image settings are validated by
// the engine when the first sample is generated.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("%w: output directory is required", shapes.ErrInvalidConfiguration)
	}
	if c.Count < 1 {
		return fmt.Errorf("%w: count must be at least 1, got %d", shapes.ErrInvalidConfiguration, c.Count)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", shapes.ErrInvalidConfiguration, c.Workers)
	}
	if c.Crops.Padding < 0 {
		return fmt.Errorf("%w: crop padding must not be negative, got %d", shapes.ErrInvalidConfiguration, c.Crops.Padding)
	}
	if c.Crops.Scale < 0 {
		return fmt.Errorf("%w: crop scale must not be negative, got %v", shapes.ErrInvalidConfiguration, c.Crops.Scale)
	}
	return nil
}
