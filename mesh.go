package textmesh

import "fmt"

// Mesh is the flattened vertex data of a text block.
type Mesh struct {
	// Positions holds x,y,z per vertex, 18 floats per character.
	Positions []float32

	// UVs holds u,v per vertex, 12 floats per character.
	UVs []float32

	// Cells lists the text-block cell of every emitted quad, in draw order.
	Cells []Cell

	// Metrics are the line metrics the quads were aligned with.
	Metrics LineMetrics
}

// Quads returns the number of character quads in the mesh.
func (m Mesh) Quads() int {
	return len(m.Cells)
}

// IsEmpty reports whether the mesh has no vertices.
func (m Mesh) IsEmpty() bool {
	return len(m.Cells) == 0
}

// VertexData returns the mesh as the named-attribute bundle consumed by a
// Context. The slices are shared, not copied.
func (m Mesh) VertexData(hint UsageHint) VertexData {
	return VertexData{
		Usage: hint,
		Attributes: []VertexAttribute{
			{Name: AttributePosition, Data: m.Positions, Components: PositionComponents},
			{Name: AttributeUV, Data: m.UVs, Components: UVComponents},
		},
	}
}

// BuildMesh lays text out on the glyph grid and returns its quads.
//
// Line metrics are measured over the whole string first, because every
// quad's alignment offset depends on them. The second pass walks the runes,
// emitting one quad per non-break rune at its (column, row).
//
// An empty or break-only string yields a valid mesh with zero quads.
// A rune missing from the glyph map aborts the build; the returned error
// wraps the glyph map's error.
func BuildMesh(glyphs GlyphMap, text string, a Alignment) (Mesh, error) {
	m := MeasureLines(text)
	quads := m.Longest * (m.Lines + 1)
	if n := len(text); quads > n {
		quads = n
	}

	mesh := Mesh{
		Positions: make([]float32, 0, quads*QuadPositionFloat),
		UVs:       make([]float32, 0, quads*QuadUVFloat),
		Cells:     make([]Cell, 0, quads),
		Metrics:   m,
	}

	var cell Cell
	for i, r := range text {
		if IsLineBreak(r) {
			cell.Col = 0
			cell.Row++
			continue
		}
		q, err := BuildQuad(glyphs, r, cell, m, a)
		if err != nil {
			return Mesh{}, fmt.Errorf("textmesh: build quad at byte %d: %w", i, err)
		}
		mesh.Positions = append(mesh.Positions, q.Positions[:]...)
		mesh.UVs = append(mesh.UVs, q.UVs[:]...)
		mesh.Cells = append(mesh.Cells, cell)
		cell.Col++
	}
	return mesh, nil
}
