// Package backend provides a pluggable graphics backend registry.
//
// A backend is a textmesh.Context that can also upload glyph atlases.
// Backends register themselves from init() functions and are selected at
// runtime by name:
//
//	import _ "github.com/gogpu/textmesh/backend/headless"
//
//	b, err := backend.Get("headless")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	glyphs, err := glyphmap.Rasterize(b, glyphmap.DefaultRasterOptions())
//	label, err := textmesh.NewStatic(b, glyphs, textmesh.Center, "Hi")
//
// # Available Backends
//
//   - "headless": in-memory models and textures (always available)
//   - "wgpu": GPU buffers and textures via gogpu/wgpu HAL
package backend
