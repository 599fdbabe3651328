// Package textmesh lays out Unicode strings on a glyph-atlas grid and turns
// them into textured triangle meshes.
//
// # Overview
//
// Every character occupies one cell. A text block is measured first (line
// count and longest line), then each non-break rune becomes a quad of two
// counter-clockwise triangles, shifted by an alignment offset and by its
// (column, row) cell. UVs address the rune's cell in the glyph atlas, inset
// slightly so filtering does not bleed into neighboring cells.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/textmesh"
//	    "github.com/gogpu/textmesh/backend/headless"
//	    "github.com/gogpu/textmesh/glyphmap"
//	)
//
//	ctx := headless.NewContext()
//	glyphs, err := glyphmap.Rasterize(ctx, glyphmap.DefaultRasterOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Built once, immutable vertex data
//	title, err := textmesh.NewStatic(ctx, glyphs, textmesh.Center, "Hello\nWorld")
//
//	// Rebuilt in place whenever the text changes
//	score, err := textmesh.NewDynamic(ctx, glyphs, textmesh.LeftUpperCorner, "0")
//	score.UpdateText("100")
//
// # Collaborators
//
// The package drives four interfaces it does not implement:
//
//   - Context: creates models, materials and entities (backend/headless,
//     backend/wgpu)
//   - Scene: accepts and removes entities (package scene)
//   - Entity: transform, visibility, model and material
//   - GlyphMap: rune to atlas cell lookup (package glyphmap)
//
// # Alignment
//
// Nine alignments anchor the block at its edges, corners or center. Units are
// glyph cells; world Y grows upward while rows grow downward.
//
// # Empty text
//
// An empty or break-only string produces a valid mesh with zero vertices.
package textmesh
