package glyphmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/textmesh"
)

// Sentinel errors for glyphmap package.
var (
	// ErrEmptyCharset is returned when a grid is created without runes.
	ErrEmptyCharset = errors.New("glyphmap: empty charset")

	// ErrCharsetOverflow is returned when a charset has more runes than the
	// grid has cells.
	ErrCharsetOverflow = errors.New("glyphmap: charset does not fit the grid")

	// ErrLineBreakInCharset is returned when a charset contains '\n' or
	// '\r'; line breaks never occupy a cell.
	ErrLineBreakInCharset = errors.New("glyphmap: line break in charset")

	// ErrFallbackNotInCharset is returned when the fallback rune has no cell.
	ErrFallbackNotInCharset = errors.New("glyphmap: fallback rune not in charset")
)

// Grid is a textmesh.GlyphMap over a cols x rows atlas. Runes of the
// charset fill the grid row-major starting at the top-left cell.
type Grid struct {
	cols, rows int
	cells      map[rune]textmesh.Cell
	order      []rune
	texture    textmesh.Texture

	fallback    rune
	hasFallback bool

	// Set by Rasterize.
	image        *image.RGBA
	cellW, cellH int
}

// Option configures a Grid.
type Option func(*Grid)

// WithFallback maps runes missing from the charset to r's cell instead of
// reporting a missing glyph. r must be part of the charset.
func WithFallback(r rune) Option {
	return func(g *Grid) {
		g.fallback = r
		g.hasFallback = true
	}
}

// New lays charset out on a cols x rows grid. Duplicate runes keep their
// first cell.
func New(cols, rows int, charset string, texture textmesh.Texture, opts ...Option) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, fmt.Errorf("glyphmap: grid %dx%d: %w", cols, rows, textmesh.ErrInvalidGlyphMap)
	}
	if charset == "" {
		return nil, ErrEmptyCharset
	}

	g := &Grid{
		cols:    cols,
		rows:    rows,
		cells:   make(map[rune]textmesh.Cell, len(charset)),
		texture: texture,
	}
	for _, r := range charset {
		if textmesh.IsLineBreak(r) {
			return nil, ErrLineBreakInCharset
		}
		if _, dup := g.cells[r]; dup {
			continue
		}
		i := len(g.order)
		if i >= cols*rows {
			return nil, fmt.Errorf("%w: %d cells", ErrCharsetOverflow, cols*rows)
		}
		g.cells[r] = textmesh.Cell{Col: i % cols, Row: i / cols}
		g.order = append(g.order, r)
	}

	for _, opt := range opts {
		opt(g)
	}
	if g.hasFallback {
		if _, ok := g.cells[g.fallback]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrFallbackNotInCharset, g.fallback)
		}
	}
	return g, nil
}

// RasterCoordinate returns the cell of r. Runes outside the charset map to
// the fallback cell when one is configured, and fail with
// *textmesh.MissingGlyphError otherwise.
func (g *Grid) RasterCoordinate(r rune) (textmesh.Cell, error) {
	if c, ok := g.cells[r]; ok {
		return c, nil
	}
	if g.hasFallback {
		textmesh.Logger().Warn("glyphmap: fallback glyph substituted",
			"rune", string(r), "fallback", string(g.fallback))
		return g.cells[g.fallback], nil
	}
	return textmesh.Cell{}, &textmesh.MissingGlyphError{Rune: r}
}

// SizeInCells returns the grid dimensions.
func (g *Grid) SizeInCells() (cols, rows int) {
	return g.cols, g.rows
}

// Texture returns the atlas texture.
func (g *Grid) Texture() textmesh.Texture {
	return g.texture
}

// Has reports whether r has its own cell.
func (g *Grid) Has(r rune) bool {
	_, ok := g.cells[r]
	return ok
}

// Runes returns the charset in cell order.
func (g *Grid) Runes() []rune {
	return append([]rune(nil), g.order...)
}

// Fallback returns the fallback rune, if any.
func (g *Grid) Fallback() (rune, bool) {
	return g.fallback, g.hasFallback
}

// Image returns the rasterized atlas, or nil when the grid was not built by
// Rasterize.
func (g *Grid) Image() *image.RGBA {
	return g.image
}

// CellPixels returns the pixel size of one cell of a rasterized atlas.
func (g *Grid) CellPixels() (w, h int) {
	return g.cellW, g.cellH
}
