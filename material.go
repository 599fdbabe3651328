package textmesh

import "fmt"

// Uniform names set on the default text material.
const (
	UniformTexture  = "_Texture"
	UniformUVScale  = "_UVScale"
	UniformUVOffset = "_UVOffset"
)

// NewDefaultMaterial creates the material used when a renderer is built
// without WithMaterial: the context's alpha-cutoff shader sampling the glyph
// map's texture with an identity UV transform.
func NewDefaultMaterial(ctx Context, glyphs GlyphMap) (Material, error) {
	shader, err := ctx.AlphaCutoffShader()
	if err != nil {
		return nil, fmt.Errorf("textmesh: alpha cutoff shader: %w", err)
	}
	mat, err := ctx.MakeMaterial(shader)
	if err != nil {
		return nil, fmt.Errorf("textmesh: make material: %w", err)
	}
	mat.SetTexture(UniformTexture, glyphs.Texture())
	mat.SetVec2(UniformUVScale, V2(1, 1))
	mat.SetVec2(UniformUVOffset, V2(0, 0))
	return mat, nil
}
