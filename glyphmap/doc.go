// Package glyphmap provides grid glyph atlases for textmesh.
//
// A Grid assigns every rune of a charset one cell of a cols x rows atlas,
// row-major from the top-left. Rasterize builds the atlas image itself from
// a TrueType or OpenType font (Go Mono by default) using
// golang.org/x/image/font and uploads it through a TextureMaker:
//
//	opts := glyphmap.DefaultRasterOptions()
//	opts.Size = 48
//	glyphs, err := glyphmap.Rasterize(ctx, opts)
//
// Runes outside the charset fail with *textmesh.MissingGlyphError unless a
// fallback rune is configured.
package glyphmap
