package glyphmap

import "golang.org/x/image/font"

// PrintableASCII is the default charset: space through tilde.
const PrintableASCII = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// RasterOptions holds font rasterization configuration.
type RasterOptions struct {
	// Font is TrueType or OpenType data. Nil selects Go Mono.
	Font []byte

	// Size is the font size in points.
	// Default: 32
	Size float64

	// DPI is the rasterization resolution.
	// Default: 72
	DPI float64

	// Columns is the number of atlas cells per row.
	// Default: 16
	Columns int

	// Charset lists the runes to rasterize, in cell order.
	// Default: PrintableASCII
	Charset string

	// Fallback substitutes runes missing from the atlas. Zero disables it.
	// Default: '?'
	Fallback rune

	// Hinting selects glyph outline hinting.
	// Default: font.HintingFull
	Hinting font.Hinting
}

// DefaultRasterOptions returns default configuration.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Size:     32,
		DPI:      72,
		Columns:  16,
		Charset:  PrintableASCII,
		Fallback: '?',
		Hinting:  font.HintingFull,
	}
}

// Validate checks if the configuration is valid.
func (o *RasterOptions) Validate() error {
	if o.Size < 4 {
		return &ConfigError{Field: "Size", Reason: "must be at least 4"}
	}
	if o.Size > 512 {
		return &ConfigError{Field: "Size", Reason: "must be at most 512"}
	}
	if o.DPI <= 0 {
		return &ConfigError{Field: "DPI", Reason: "must be positive"}
	}
	if o.Columns < 1 {
		return &ConfigError{Field: "Columns", Reason: "must be at least 1"}
	}
	if o.Columns > 256 {
		return &ConfigError{Field: "Columns", Reason: "must be at most 256"}
	}
	if o.Charset == "" {
		return &ConfigError{Field: "Charset", Reason: "must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "glyphmap: invalid raster options." + e.Field + ": " + e.Reason
}
