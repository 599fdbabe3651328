package textmesh

// The interfaces in this file are the collaborators a Renderer drives.
// backend/headless and backend/wgpu implement Context; scene implements
// Scene; glyphmap implements GlyphMap.

// Context creates GPU-backed models, materials and entities.
type Context interface {
	// MakeMaterial creates a material that renders with shader.
	MakeMaterial(shader Shader) (Material, error)

	// AlphaCutoffShader returns the shader that discards texels whose alpha
	// is below the cutoff. Text materials use it by default.
	AlphaCutoffShader() (Shader, error)

	// MakeModel uploads vertex data. The usage hint in data is fixed for
	// the lifetime of the model.
	MakeModel(data VertexData) (Model, error)

	// MakeEntity pairs a model with a material.
	MakeEntity(model Model, material Material) (Entity, error)
}

// Model holds vertex data on the graphics side.
type Model interface {
	// UpdateVertexData replaces the model's vertex data in place.
	UpdateVertexData(data VertexData) error
}

// Shader is an opaque compiled shader handle.
type Shader interface{}

// Texture is an opaque texture handle.
type Texture interface{}

// Material binds a shader to its uniforms.
type Material interface {
	SetTexture(name string, texture Texture)
	SetVec2(name string, v Vec2)
}

// Entity is a renderable model/material pair with a transform.
type Entity interface {
	SetModelMatrix(pos Vec3, rot Quat, scale Vec3)
	Hide()
	Show()
	IsHidden() bool
}

// Scene accepts and removes entities. RemoveEntity on an entity that is not
// in the scene must be a no-op.
type Scene interface {
	AddEntity(entity Entity)
	RemoveEntity(entity Entity)
}

// Cell is a position in a grid of glyph cells: column and row.
// In an atlas it addresses a glyph raster; in a text block it addresses a
// character, with Row growing downward.
type Cell struct {
	Col, Row int
}

// GlyphMap maps characters to cells of a texture atlas.
type GlyphMap interface {
	// RasterCoordinate returns the atlas cell holding r.
	// A rune without a cell yields an error matching ErrMissingGlyph.
	RasterCoordinate(r rune) (Cell, error)

	// SizeInCells returns the atlas grid dimensions.
	SizeInCells() (cols, rows int)

	// Texture returns the atlas texture.
	Texture() Texture
}

// Closer is implemented by backend handles that own releasable resources.
type Closer interface {
	Close()
}
