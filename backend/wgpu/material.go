//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

// Material is the uniform block of the alpha-cutoff shader plus its bound
// glyph texture. The bind group is built on demand and rebuilt after the
// texture changes.
type Material struct {
	ctx     *Context
	shader  *Shader
	uniform hal.Buffer

	uvScale  textmesh.Vec2
	uvOffset textmesh.Vec2
	cutoff   float32
	texture  *Texture

	bindGroup hal.BindGroup
	closed    bool
}

// MakeMaterial creates a material for a shader returned by
// AlphaCutoffShader.
func (c *Context) MakeMaterial(shader textmesh.Shader) (textmesh.Material, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	s, ok := shader.(*Shader)
	if !ok || s == nil {
		return nil, fmt.Errorf("%w: shader %T", textmesh.ErrForeignHandle, shader)
	}
	buf, _, err := c.createBuffer("material_uniform", materialUniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	m := &Material{
		ctx:     c,
		shader:  s,
		uniform: buf,
		uvScale: textmesh.V2(1, 1),
		cutoff:  c.cutoff,
	}
	if err := m.flush(); err != nil {
		c.destroyBuffer(buf, materialUniformSize)
		return nil, err
	}
	return m, nil
}

// SetTexture binds t to the glyph texture slot. Only textmesh.UniformTexture
// is recognized, and t must come from MakeTexture of the same context.
func (m *Material) SetTexture(name string, t textmesh.Texture) {
	if m.closed {
		return
	}
	if name != textmesh.UniformTexture {
		textmesh.Logger().Warn("wgpu: unknown texture uniform", "name", name)
		return
	}
	tex, ok := t.(*Texture)
	if !ok {
		textmesh.Logger().Warn("wgpu: texture from another backend ignored", "type", fmt.Sprintf("%T", t))
		return
	}
	m.texture = tex
	m.releaseBindGroup()
}

// SetVec2 sets textmesh.UniformUVScale or textmesh.UniformUVOffset.
func (m *Material) SetVec2(name string, v textmesh.Vec2) {
	if m.closed {
		return
	}
	switch name {
	case textmesh.UniformUVScale:
		m.uvScale = v
	case textmesh.UniformUVOffset:
		m.uvOffset = v
	default:
		textmesh.Logger().Warn("wgpu: unknown vec2 uniform", "name", name)
		return
	}
	if err := m.flush(); err != nil {
		textmesh.Logger().Warn("wgpu: material uniform write failed", "name", name, "error", err)
	}
}

// SetCutoff changes the alpha cutoff of this material.
func (m *Material) SetCutoff(cutoff float32) error {
	if m.closed {
		return textmesh.ErrReleased
	}
	m.cutoff = cutoff
	return m.flush()
}

// uniformBytes encodes the uniform block in shader layout.
func (m *Material) uniformBytes() []byte {
	out := make([]byte, materialUniformSize)
	for i, f := range []float32{m.uvScale.X, m.uvScale.Y, m.uvOffset.X, m.uvOffset.Y, m.cutoff} {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

func (m *Material) flush() error {
	return m.ctx.writeBuffer(m.uniform, m.uniformBytes())
}

// BindGroup returns the group 1 bind group. It fails until a texture is
// bound.
func (m *Material) BindGroup() (hal.BindGroup, error) {
	if m.closed {
		return nil, textmesh.ErrReleased
	}
	if m.bindGroup != nil {
		return m.bindGroup, nil
	}
	if m.texture == nil {
		return nil, fmt.Errorf("wgpu: material has no %s texture", textmesh.UniformTexture)
	}
	p, err := m.ctx.ensurePipeline()
	if err != nil {
		return nil, err
	}
	sampler, err := m.ctx.Sampler()
	if err != nil {
		return nil, err
	}
	bg, err := m.ctx.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  m.ctx.label + "_material_bind_group",
		Layout: p.materialLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: m.uniform.NativeHandle(),
				Size:   materialUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: m.texture.view.NativeHandle()}},
			{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create material bind group: %w", err)
	}
	m.bindGroup = bg
	return bg, nil
}

func (m *Material) releaseBindGroup() {
	if m.bindGroup != nil {
		m.ctx.device.DestroyBindGroup(m.bindGroup)
		m.bindGroup = nil
	}
}

// Shader returns the material's shader.
func (m *Material) Shader() *Shader { return m.shader }

// Texture returns the bound glyph texture, or nil.
func (m *Material) Texture() *Texture { return m.texture }

// UVScale returns the UV scale uniform.
func (m *Material) UVScale() textmesh.Vec2 { return m.uvScale }

// UVOffset returns the UV offset uniform.
func (m *Material) UVOffset() textmesh.Vec2 { return m.uvOffset }

// Cutoff returns the alpha cutoff.
func (m *Material) Cutoff() float32 { return m.cutoff }

// Uniform returns the uniform buffer.
func (m *Material) Uniform() hal.Buffer { return m.uniform }

// Close destroys the bind group and uniform buffer. The texture is not
// owned by the material.
func (m *Material) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.releaseBindGroup()
	m.ctx.destroyBuffer(m.uniform, materialUniformSize)
	m.uniform = nil
}
