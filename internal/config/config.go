// Package config loads wire3d CLI settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/wire3d"
)

// Config errors.
var (
	// ErrUnknownFormat is returned for a config file that is neither TOML
	// nor YAML.
	ErrUnknownFormat = errors.New("config: unknown file format")

	// ErrInvalid is wrapped by every Validate failure.
	ErrInvalid = errors.New("config: invalid")
)

// Config holds the settings of one CLI run.
type Config struct {
	Width       int     `toml:"width" yaml:"width"`
	Height      int     `toml:"height" yaml:"height"`
	Step        float64 `toml:"step" yaml:"step"`
	Color       string  `toml:"color" yaml:"color"`
	Background  string  `toml:"background" yaml:"background"`
	Strict      bool    `toml:"strict" yaml:"strict"`
	Headless    bool    `toml:"headless" yaml:"headless"`
	WindowScale int     `toml:"window_scale" yaml:"window_scale"`
}

// Default returns the built-in settings: a 500x500 black screen, magenta
// lines and 100 samples per curve.
func Default() Config {
	return Config{
		Width:       500,
		Height:      500,
		Step:        wire3d.DefaultStep,
		Color:       wire3d.Magenta.Hex(),
		Background:  wire3d.Black.Hex(),
		WindowScale: 1,
	}
}

// Load reads path over the defaults. The format is chosen by extension:
// .toml, .yaml or .yml. Keys missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if err := wire3d.ValidateStep(c.Step); err != nil {
		return fmt.Errorf("%w: step: %w", ErrInvalid, err)
	}
	if c.WindowScale < 1 {
		return fmt.Errorf("%w: window_scale %d", ErrInvalid, c.WindowScale)
	}
	if _, err := wire3d.ParseHex(c.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalid, err)
	}
	if _, err := wire3d.ParseHex(c.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalid, err)
	}
	return nil
}

// DrawColor returns the parsed line colour.
func (c Config) DrawColor() (wire3d.Color, error) {
	return wire3d.ParseHex(c.Color)
}

// BackgroundColor returns the parsed background colour.
func (c Config) BackgroundColor() (wire3d.Color, error) {
	return wire3d.ParseHex(c.Background)
}
