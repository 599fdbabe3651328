// Package config loads the textmesh command's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/glyphmap"
)

// Config is the file format of the textmesh command. Command-line flags
// override individual fields after loading.
type Config struct {
	// Backend is a registered backend name. Empty selects the best
	// available one.
	Backend string `yaml:"backend"`

	Align  textmesh.Alignment `yaml:"align"`
	Static bool               `yaml:"static"`

	// Normalize applies Unicode NFC to text before layout.
	Normalize bool `yaml:"normalize"`

	Font   FontConfig   `yaml:"font"`
	Output OutputConfig `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// FontConfig describes the glyph atlas.
type FontConfig struct {
	// Path is a TrueType/OpenType file. Empty uses Go Mono.
	Path     string  `yaml:"path"`
	Size     float64 `yaml:"size"`
	DPI      float64 `yaml:"dpi"`
	Columns  int     `yaml:"columns"`
	Charset  string  `yaml:"charset"`
	Fallback string  `yaml:"fallback"`
}

// OutputConfig lists export destinations. Empty paths are skipped.
type OutputConfig struct {
	OBJ string `yaml:"obj"`
	PDF string `yaml:"pdf"`
}

// Default returns the configuration used without a file.
func Default() Config {
	raster := glyphmap.DefaultRasterOptions()
	return Config{
		Align: textmesh.Center,
		Font: FontConfig{
			Size:     raster.Size,
			DPI:      raster.DPI,
			Columns:  raster.Columns,
			Charset:  raster.Charset,
			Fallback: string(raster.Fallback),
		},
		LogLevel: "warn",
	}
}

// Load reads path over Default. Fields missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration, including the raster options it
// produces.
func (c *Config) Validate() error {
	if !c.Align.Valid() {
		return &textmesh.UnhandledAlignmentError{Alignment: c.Align}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	opts, err := c.RasterOptions()
	if err != nil {
		return err
	}
	return opts.Validate()
}

// RasterOptions converts the font section to glyph atlas options, reading
// the font file when one is set.
func (c *Config) RasterOptions() (glyphmap.RasterOptions, error) {
	opts := glyphmap.DefaultRasterOptions()
	opts.Size = c.Font.Size
	opts.DPI = c.Font.DPI
	opts.Columns = c.Font.Columns
	opts.Charset = c.Font.Charset

	opts.Fallback = 0
	if c.Font.Fallback != "" {
		r, err := ParseRune(c.Font.Fallback)
		if err != nil {
			return opts, fmt.Errorf("font.fallback: %w", err)
		}
		opts.Fallback = r
	}

	if c.Font.Path != "" {
		data, err := os.ReadFile(c.Font.Path)
		if err != nil {
			return opts, fmt.Errorf("font.path: %w", err)
		}
		opts.Font = data
	}
	return opts, nil
}

// Save writes c as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ErrInvalidRune is returned by ParseRune.
var ErrInvalidRune = errors.New("invalid rune")
