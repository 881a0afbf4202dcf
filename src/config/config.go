// Package config holds defaults for the comparison tools and loads overrides from a TOML file.
//
// Example file:
//
//	log_level = "debug"
//	top = 5
//	link_base = "http://localhost:8080/"
//
//	[figure]
//	width_in = 10
//	height_in = 10
//	dpi = 140
//
//	[chart]
//	width = 1200
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/dclamage/SudokuVariantSolverJS/src/types"
)

// Config is the merged configuration. Flags set on the command line win over file values.
type Config struct {
	LogLevel string `toml:"log_level"`
	Top      int    `toml:"top"`
	LinkBase string `toml:"link_base"`
	Figure   Figure `toml:"figure"`
	Chart    Chart  `toml:"chart"`
}

// Figure sizes the base/head comparison figure.
type Figure struct {
	WidthIn  float64 `toml:"width_in"`
	HeightIn float64 `toml:"height_in"`
	DPI      int     `toml:"dpi"`
}

// Chart sizes the delta charts. Height 0 derives it from the width.
type Chart struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Top:      3,
		LinkBase: types.DefaultLinkBase,
		Figure:   Figure{WidthIn: 10, HeightIn: 10, DPI: 140},
		Chart:    Chart{Width: 1000},
	}
}

// LoadTOML overlays the file at path onto cfg. Keys absent from the file keep their current value.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg.Validate()
}

// Load returns Default with the file at path applied. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values that would produce an empty report or an unusable image.
func (c *Config) Validate() error {
	if c.Top < 1 {
		return fmt.Errorf("config: top must be >= 1, got %d", c.Top)
	}
	if c.Figure.WidthIn <= 0 || c.Figure.HeightIn <= 0 || c.Figure.DPI <= 0 {
		return fmt.Errorf("config: figure size must be positive, got %gx%g in at %d dpi", c.Figure.WidthIn, c.Figure.HeightIn, c.Figure.DPI)
	}
	if c.Chart.Width < 0 || c.Chart.Height < 0 {
		return fmt.Errorf("config: chart size must not be negative")
	}
	return nil
}
