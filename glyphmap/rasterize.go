package glyphmap

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/textmesh"
)

// ErrNilTextureMaker is returned when Rasterize has nowhere to upload the
// atlas.
var ErrNilTextureMaker = errors.New("glyphmap: nil texture maker")

// TextureMaker uploads a rasterized atlas image. Both graphics backends
// implement it on their Context.
type TextureMaker interface {
	MakeTexture(img *image.RGBA) (textmesh.Texture, error)
}

// Rasterize draws every charset rune the font covers into a white-on-
// transparent RGBA atlas, one glyph per cell, uploads it through maker and
// returns the grid addressing it.
//
// Runes the font has no glyph for are dropped from the charset with a
// warning. The fallback rune, when set and covered by the font, is appended
// to the charset if absent.
func Rasterize(maker TextureMaker, opts RasterOptions) (*Grid, error) {
	if maker == nil {
		return nil, ErrNilTextureMaker
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	data := opts.Font
	if data == nil {
		data = gomono.TTF
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("glyphmap: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    opts.Size,
		DPI:     opts.DPI,
		Hinting: opts.Hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("glyphmap: failed to create face: %w", err)
	}
	defer face.Close()

	charset := opts.Charset
	if opts.Fallback != 0 {
		charset += string(opts.Fallback)
	}
	runes, err := coveredRunes(f, charset)
	if err != nil {
		return nil, err
	}

	cellW, cellH, ascent := cellSize(face, runes)
	cols := min(opts.Columns, len(runes))
	rows := (len(runes) + cols - 1) / cols

	img := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	d := font.Drawer{Dst: img, Src: image.White, Face: face}
	for i, r := range runes {
		col, row := i%cols, i/cols
		d.Dot = fixed.P(col*cellW, row*cellH+ascent)
		d.DrawString(string(r))
	}

	tex, err := maker.MakeTexture(img)
	if err != nil {
		return nil, fmt.Errorf("glyphmap: upload atlas: %w", err)
	}

	var gridOpts []Option
	if opts.Fallback != 0 && slices.Contains(runes, opts.Fallback) {
		gridOpts = append(gridOpts, WithFallback(opts.Fallback))
	}
	g, err := New(cols, rows, string(runes), tex, gridOpts...)
	if err != nil {
		return nil, err
	}
	g.image = img
	g.cellW, g.cellH = cellW, cellH

	textmesh.Logger().Debug("glyphmap: atlas rasterized",
		"glyphs", len(runes),
		"cols", cols,
		"rows", rows,
		"cell_width", cellW,
		"cell_height", cellH)
	return g, nil
}

// coveredRunes deduplicates charset and keeps the runes f has a glyph for.
func coveredRunes(f *sfnt.Font, charset string) ([]rune, error) {
	var buf sfnt.Buffer
	seen := make(map[rune]bool, len(charset))
	runes := make([]rune, 0, len(charset))
	for _, r := range charset {
		if textmesh.IsLineBreak(r) {
			return nil, ErrLineBreakInCharset
		}
		if seen[r] {
			continue
		}
		seen[r] = true
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			textmesh.Logger().Warn("glyphmap: rune not covered by font", "rune", string(r))
			continue
		}
		runes = append(runes, r)
	}
	if len(runes) == 0 {
		return nil, ErrEmptyCharset
	}
	return runes, nil
}

// cellSize returns the widest advance among runes and the line height of
// face, both rounded up to whole pixels.
func cellSize(face font.Face, runes []rune) (w, h, ascent int) {
	m := face.Metrics()
	ascent = m.Ascent.Ceil()
	h = ascent + m.Descent.Ceil()
	for _, r := range runes {
		if adv, ok := face.GlyphAdvance(r); ok && adv.Ceil() > w {
			w = adv.Ceil()
		}
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h, ascent
}
