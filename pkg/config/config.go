// Package config loads render settings from TOML files and merges them with command line
// overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

var ErrInvalidConfig = errors.New("config: invalid render config")

// RenderConfig holds everything needed to render one image
type RenderConfig struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	SamplesPerPixel int    `toml:"samples_per_pixel"`
	MaxDepth        int    `toml:"max_depth"`
	Seed            int64  `toml:"seed"`
	Workers         int    `toml:"workers"` // 0 = one per CPU
	Scene           string `toml:"scene"`   // built-in scene ID or scene file path
	Output          string `toml:"output"`  // image path; empty picks a timestamped PNG
}

// Default returns the settings used when nothing else is given
func Default() RenderConfig {
	sampling := renderer.DefaultSamplingConfig()
	return RenderConfig{
		Width:           sampling.Width,
		Height:          sampling.Height,
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		Seed:            sampling.Seed,
		Scene:           "simple",
	}
}

// Load reads a TOML config file on top of the defaults. A leading ~ in path, Scene or Output
// is expanded to the home directory. Unknown keys are an error.
func Load(path string) (RenderConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("expand %q: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return RenderConfig{}, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse decodes TOML config data on top of the defaults
func Parse(data []byte) (RenderConfig, error) {
	cfg := Default()

	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return RenderConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.expandPaths(); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of override applied
func Merge(base, override RenderConfig) RenderConfig {
	result := base

	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.Seed != 0 {
		result.Seed = override.Seed
	}
	if override.Workers != 0 {
		result.Workers = override.Workers
	}
	if override.Scene != "" {
		result.Scene = override.Scene
	}
	if override.Output != "" {
		result.Output = override.Output
	}

	return result
}

// Sampling converts the config into renderer settings
func (c RenderConfig) Sampling() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		Width:           c.Width,
		Height:          c.Height,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		Seed:            c.Seed,
		NumWorkers:      c.Workers,
	}
}

// Validate checks the config before any work starts
func (c RenderConfig) Validate() error {
	if err := c.Sampling().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Scene == "" {
		return fmt.Errorf("%w: no scene", ErrInvalidConfig)
	}
	return nil
}

// Encode writes the config as TOML
func (c RenderConfig) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

func (c *RenderConfig) expandPaths() error {
	var err error
	if c.Scene, err = homedir.Expand(c.Scene); err != nil {
		return fmt.Errorf("expand scene path: %w", err)
	}
	if c.Output, err = homedir.Expand(c.Output); err != nil {
		return fmt.Errorf("expand output path: %w", err)
	}
	return nil
}
