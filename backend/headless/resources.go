package headless

import (
	"slices"

	"github.com/gogpu/textmesh"
)

// Shader is a named shader handle.
type Shader struct {
	Name string
}

// Texture is an RGBA8 pixel copy, rows top to bottom.
type Texture struct {
	Width, Height int
	Pix           []byte
}

// Alpha returns the alpha channel at (x, y).
func (t *Texture) Alpha(x, y int) uint8 {
	return t.Pix[4*(y*t.Width+x)+3]
}

// Material records the uniforms set on it.
type Material struct {
	shader   *Shader
	textures map[string]textmesh.Texture
	vec2s    map[string]textmesh.Vec2
	closed   bool
}

// SetTexture binds t to the uniform called name.
func (m *Material) SetTexture(name string, t textmesh.Texture) { m.textures[name] = t }

// SetVec2 sets the uniform called name.
func (m *Material) SetVec2(name string, v textmesh.Vec2) { m.vec2s[name] = v }

// Shader returns the material's shader.
func (m *Material) Shader() *Shader { return m.shader }

// Texture returns the texture bound to name.
func (m *Material) Texture(name string) (textmesh.Texture, bool) {
	t, ok := m.textures[name]
	return t, ok
}

// Vec2 returns the uniform called name.
func (m *Material) Vec2(name string) (textmesh.Vec2, bool) {
	v, ok := m.vec2s[name]
	return v, ok
}

// Close marks the material released.
func (m *Material) Close() { m.closed = true }

// Closed reports whether Close was called.
func (m *Material) Closed() bool { return m.closed }

// Model holds a copy of the last uploaded vertex data.
type Model struct {
	ctx       *Context
	usage     textmesh.UsageHint
	positions []float32
	uvs       []float32
	updates   int
	closed    bool
}

// UpdateVertexData replaces the model's vertex data. Models created with
// textmesh.UsageStatic reject updates with textmesh.ErrStaticModel.
func (m *Model) UpdateVertexData(data textmesh.VertexData) error {
	if m.closed {
		return textmesh.ErrReleased
	}
	if m.usage == textmesh.UsageStatic {
		return textmesh.ErrStaticModel
	}
	m.store(data)
	m.updates++
	return nil
}

func (m *Model) store(data textmesh.VertexData) {
	m.positions = m.positions[:0]
	m.uvs = m.uvs[:0]
	if a, ok := data.Attribute(textmesh.AttributePosition); ok {
		m.positions = append(m.positions, a.Data...)
	}
	if a, ok := data.Attribute(textmesh.AttributeUV); ok {
		m.uvs = append(m.uvs, a.Data...)
	}
	m.ctx.stats.Uploads++
	m.ctx.stats.UploadedFloats += len(m.positions) + len(m.uvs)
	textmesh.Logger().Debug("headless: vertex data stored",
		"usage", m.usage,
		"vertices", len(m.positions)/textmesh.PositionComponents)
}

// Usage returns the usage hint the model was created with.
func (m *Model) Usage() textmesh.UsageHint { return m.usage }

// Positions returns a copy of the x,y,z stream.
func (m *Model) Positions() []float32 { return slices.Clone(m.positions) }

// UVs returns a copy of the u,v stream.
func (m *Model) UVs() []float32 { return slices.Clone(m.uvs) }

// VertexCount returns the number of stored vertices.
func (m *Model) VertexCount() int { return len(m.positions) / textmesh.PositionComponents }

// Updates returns how many times UpdateVertexData replaced the data.
func (m *Model) Updates() int { return m.updates }

// Close releases the model. Later updates fail with textmesh.ErrReleased.
func (m *Model) Close() { m.closed = true }

// Entity is a model/material pair with a transform and visibility flag.
type Entity struct {
	model    *Model
	material textmesh.Material
	hidden   bool
	position textmesh.Vec3
	rotation textmesh.Quat
	scale    textmesh.Vec3
	closed   bool
}

// SetModelMatrix stores the transform.
func (e *Entity) SetModelMatrix(pos textmesh.Vec3, rot textmesh.Quat, scale textmesh.Vec3) {
	e.position, e.rotation, e.scale = pos, rot, scale
}

// ModelMatrix returns the transform as a column-major matrix.
func (e *Entity) ModelMatrix() textmesh.Mat4 {
	return textmesh.ModelMatrix(e.position, e.rotation, e.scale)
}

// Hide marks the entity hidden.
func (e *Entity) Hide() { e.hidden = true }

// Show clears the hidden mark.
func (e *Entity) Show() { e.hidden = false }

// IsHidden reports the hidden mark.
func (e *Entity) IsHidden() bool { return e.hidden }

// Model returns the entity's model.
func (e *Entity) Model() *Model { return e.model }

// Material returns the entity's material.
func (e *Entity) Material() textmesh.Material { return e.material }

// Close marks the entity released.
func (e *Entity) Close() { e.closed = true }

// Closed reports whether Close was called.
func (e *Entity) Closed() bool { return e.closed }
