package textmesh

// UVInset shrinks every sampled atlas cell on all four edges so filtering
// never reads texels of the neighboring cell.
const UVInset = 0.001

// Floats per character quad: 6 vertices of 3 position and 2 UV components.
const (
	QuadVertices      = 6
	QuadPositionFloat = QuadVertices * PositionComponents
	QuadUVFloat       = QuadVertices * UVComponents
)

// Quad is the vertex data of one character: two counter-clockwise
// triangles.
type Quad struct {
	Positions [QuadPositionFloat]float32
	UVs       [QuadUVFloat]float32
}

// unitQuad is the local-space template, corners at (0,0,0) and (1,1,0).
var unitQuad = [QuadPositionFloat]float32{
	1, 1, 0,
	0, 1, 0,
	0, 0, 0,
	1, 1, 0,
	0, 0, 0,
	1, 0, 0,
}

// BuildQuad returns the quad for r placed at cell within a text block with
// metrics m and alignment a. The glyph map error for a missing rune is
// returned unchanged.
func BuildQuad(glyphs GlyphMap, r rune, cell Cell, m LineMetrics, a Alignment) (Quad, error) {
	raster, err := glyphs.RasterCoordinate(r)
	if err != nil {
		return Quad{}, err
	}
	cols, rows := glyphs.SizeInCells()
	if cols < 1 || rows < 1 {
		return Quad{}, ErrInvalidGlyphMap
	}

	var q Quad
	offset := a.Offset(m.Longest, m.Lines)
	dx := offset.X + float32(cell.Col)
	dy := offset.Y + float32(cell.Row)

	q.Positions = unitQuad
	for i := 0; i < QuadPositionFloat; i += PositionComponents {
		q.Positions[i] += dx
		q.Positions[i+1] -= dy
	}

	q.UVs = cellUVs(raster, cols, rows)
	return q, nil
}

// cellUVs returns the UVs of the atlas cell at raster, inset by UVInset.
// For cells too small to inset by UVInset the inset shrinks to a quarter
// of the cell, keeping the coordinates strictly inside it.
func cellUVs(raster Cell, cols, rows int) [QuadUVFloat]float32 {
	w := 1 / float32(cols)
	h := 1 / float32(rows)

	insetX, insetY := float32(UVInset), float32(UVInset)
	if 2*insetX >= w {
		insetX = w / 4
	}
	if 2*insetY >= h {
		insetY = h / 4
	}

	xl := float32(raster.Col)*w + insetX
	yl := float32(raster.Row)*h + insetY
	xh := float32(raster.Col)*w + w - insetX
	yh := float32(raster.Row)*h + h - insetY

	return [QuadUVFloat]float32{
		xh, yl,
		xl, yl,
		xl, yh,
		xh, yl,
		xl, yh,
		xh, yh,
	}
}
