// Package config loads graphview CLI settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultFile is read from the working directory when present.
const DefaultFile = "graphview.toml"

// EnvPrefix prefixes environment overrides, e.g. GRAPHVIEW_WIDTH=1024.
const EnvPrefix = "GRAPHVIEW_"

// Layout engines accepted by the layout key.
var Engines = []string{"dot", "neato", "fdp", "sfdp", "circo", "twopi"}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all configuration for the CLI.
type Config struct {
	Width      int     `koanf:"width"`
	Height     int     `koanf:"height"`
	Resolution float64 `koanf:"resolution"`
	Background string  `koanf:"background"`
	Theme      string  `koanf:"theme"`
	Output     string  `koanf:"output"`
	Layout     string  `koanf:"layout"`
	Watch      bool    `koanf:"watch"`
	Listen     string  `koanf:"listen"`
	Verbose    bool    `koanf:"verbose"`
}

// Defaults returns the built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"width":      800,
		"height":     600,
		"resolution": 1.0,
		"background": "white",
		"theme":      "",
		"output":     "graph.png",
		"layout":     "dot",
		"watch":      false,
		"listen":     "127.0.0.1:8080",
		"verbose":    false,
	}
}

// Load merges, lowest priority first, the defaults, the config file, the
// environment and the flags that were set on f. An empty path reads
// DefaultFile if it exists; an explicit path must exist.
func Load(f *pflag.FlagSet, path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(Defaults()), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.Resolution <= 0:
		return fmt.Errorf("%w: resolution %g", ErrInvalid, c.Resolution)
	}
	if !slices.Contains(Engines, c.Layout) {
		return fmt.Errorf("%w: layout engine %q", ErrInvalid, c.Layout)
	}
	return nil
}

// mapProvider adapts a plain map to koanf.Provider.
type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) {
	return p, nil
}

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("config: map provider does not support ReadBytes")
}
