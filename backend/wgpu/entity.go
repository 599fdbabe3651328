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

// Entity pairs a model with a material and keeps its model matrix in a
// uniform buffer bound at group 0.
type Entity struct {
	ctx       *Context
	model     *Model
	material  textmesh.Material
	uniform   hal.Buffer
	bindGroup hal.BindGroup
	matrix    textmesh.Mat4
	hidden    bool
	closed    bool
}

// MakeEntity creates an entity for a model of this context. The transform
// starts as the identity.
func (c *Context) MakeEntity(model textmesh.Model, material textmesh.Material) (textmesh.Entity, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	m, ok := model.(*Model)
	if !ok || m == nil || m.ctx != c {
		return nil, fmt.Errorf("%w: model %T", textmesh.ErrForeignHandle, model)
	}
	p, err := c.ensurePipeline()
	if err != nil {
		return nil, err
	}
	buf, _, err := c.createBuffer("transform_uniform", transformUniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	bg, err := c.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  c.label + "_transform_bind_group",
		Layout: p.transformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(),
				Size:   transformUniformSize,
			}},
		},
	})
	if err != nil {
		c.destroyBuffer(buf, transformUniformSize)
		return nil, fmt.Errorf("wgpu: create transform bind group: %w", err)
	}

	e := &Entity{
		ctx:       c,
		model:     m,
		material:  material,
		uniform:   buf,
		bindGroup: bg,
		matrix:    textmesh.Identity4(),
	}
	if err := e.flush(); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// SetModelMatrix composes the transform and uploads it.
func (e *Entity) SetModelMatrix(pos textmesh.Vec3, rot textmesh.Quat, scale textmesh.Vec3) {
	if e.closed {
		return
	}
	e.matrix = textmesh.ModelMatrix(pos, rot, scale)
	if err := e.flush(); err != nil {
		textmesh.Logger().Warn("wgpu: transform uniform write failed", "error", err)
	}
}

func (e *Entity) flush() error {
	out := make([]byte, transformUniformSize)
	for i, f := range e.matrix {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return e.ctx.writeBuffer(e.uniform, out)
}

// ModelMatrix returns the last uploaded transform.
func (e *Entity) ModelMatrix() textmesh.Mat4 { return e.matrix }

// Hide excludes the entity from drawing.
func (e *Entity) Hide() { e.hidden = true }

// Show makes a hidden entity drawable again.
func (e *Entity) Show() { e.hidden = false }

// IsHidden reports whether Hide was called without a later Show.
func (e *Entity) IsHidden() bool { return e.hidden }

// Model returns the entity's model.
func (e *Entity) Model() *Model { return e.model }

// Material returns the entity's material.
func (e *Entity) Material() textmesh.Material { return e.material }

// BindGroup returns the group 0 bind group.
func (e *Entity) BindGroup() hal.BindGroup { return e.bindGroup }

// Uniform returns the transform uniform buffer.
func (e *Entity) Uniform() hal.Buffer { return e.uniform }

// Close destroys the bind group and uniform buffer. The model and material
// are not owned by the entity.
func (e *Entity) Close() {
	if e.closed {
		return
	}
	e.closed = true
	if e.bindGroup != nil {
		e.ctx.device.DestroyBindGroup(e.bindGroup)
		e.bindGroup = nil
	}
	e.ctx.destroyBuffer(e.uniform, transformUniformSize)
	e.uniform = nil
}
