package textmesh

import (
	"errors"
	"fmt"
)

// Sentinel errors for textmesh package.
var (
	// ErrMissingGlyph is matched by errors.Is for every *MissingGlyphError.
	ErrMissingGlyph = errors.New("textmesh: glyph not in glyph map")

	// ErrImmutableText is returned by UpdateText on a static renderer.
	ErrImmutableText = errors.New("textmesh: static text cannot be updated")

	// ErrNilContext is returned when a renderer is created without a graphics context.
	ErrNilContext = errors.New("textmesh: graphics context is nil")

	// ErrNilGlyphMap is returned when a renderer is created without a glyph map.
	ErrNilGlyphMap = errors.New("textmesh: glyph map is nil")

	// ErrInvalidGlyphMap is returned when a glyph map reports a cell grid
	// smaller than 1x1.
	ErrInvalidGlyphMap = errors.New("textmesh: glyph map has an empty cell grid")

	// ErrStaticModel is returned by backends when vertex data of a model
	// created with UsageStatic is updated.
	ErrStaticModel = errors.New("textmesh: static model cannot be updated")

	// ErrReleased is returned by backends for handles used after Close.
	ErrReleased = errors.New("textmesh: handle used after close")

	// ErrForeignHandle is returned when a backend receives a model or
	// shader created by another backend.
	ErrForeignHandle = errors.New("textmesh: handle belongs to another backend")
)

// UnhandledAlignmentError reports an alignment value outside the nine
// enumerated modes. It indicates a programming error.
type UnhandledAlignmentError struct {
	Alignment Alignment
}

func (e *UnhandledAlignmentError) Error() string {
	return fmt.Sprintf("textmesh: unhandled text alignment %d", int(e.Alignment))
}

// MissingGlyphError is returned by glyph maps for a rune without a cell.
type MissingGlyphError struct {
	Rune rune
}

func (e *MissingGlyphError) Error() string {
	return fmt.Sprintf("textmesh: glyph map has no cell for %q (U+%04X)", e.Rune, e.Rune)
}

// Is makes errors.Is(err, ErrMissingGlyph) true.
func (e *MissingGlyphError) Is(target error) bool {
	return target == ErrMissingGlyph
}
