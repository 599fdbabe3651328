//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/textmesh"
)

// vertexBuffer is the GPU storage of one vertex attribute.
type vertexBuffer struct {
	name       string
	components int
	buf        hal.Buffer
	capacity   uint64
	used       uint64
}

// Model stores each vertex attribute in its own vertex buffer.
//
// Static models allocate exactly what the initial data needs and reject
// updates. Dynamic models round capacity up to a power of two and grow
// their buffers when an update no longer fits.
type Model struct {
	ctx         *Context
	usage       textmesh.UsageHint
	buffers     []vertexBuffer
	layouts     []gputypes.VertexBufferLayout
	vertexCount int
	closed      bool
}

// MakeModel uploads data into new vertex buffers.
func (c *Context) MakeModel(data textmesh.VertexData) (textmesh.Model, error) {
	if err := c.check(); err != nil {
		return nil, err
	}
	m := &Model{
		ctx:         c,
		usage:       data.Usage,
		buffers:     make([]vertexBuffer, 0, len(data.Attributes)),
		layouts:     data.Layouts(),
		vertexCount: data.VertexCount(),
	}
	for _, a := range data.Attributes {
		raw := floatBytes(a.Data)
		buf, capacity, err := c.createBuffer("vertex_"+a.Name, m.capacityFor(len(raw)), vertexUsage)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.buffers = append(m.buffers, vertexBuffer{
			name:       a.Name,
			components: a.Components,
			buf:        buf,
			capacity:   capacity,
			used:       uint64(len(raw)),
		})
		if err := c.writeBuffer(buf, raw); err != nil {
			m.Close()
			return nil, err
		}
	}
	textmesh.Logger().Debug("wgpu: model created",
		"usage", m.usage,
		"vertices", m.vertexCount,
		"buffers", len(m.buffers))
	return m, nil
}

// vertexUsage is the usage of every vertex buffer. Static buffers need
// CopyDst too, for the initial upload.
const vertexUsage = gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst

func (m *Model) capacityFor(n int) uint64 {
	size := uint64(n) //nolint:gosec // n is a slice length
	if m.usage == textmesh.UsageDynamic && size > minBufferSize {
		size = 1 << bits.Len64(size-1)
	}
	return size
}

// UpdateVertexData replaces the vertex data in place, growing buffers that
// are too small. Models created with textmesh.UsageStatic return
// textmesh.ErrStaticModel.
//
// Grown buffers are filled before they replace the old ones, so a failed
// allocation or upload into a grown buffer keeps the previous data. A failed
// write into an existing buffer leaves its contents undefined; the model then
// reports zero vertices until the next successful update.
func (m *Model) UpdateVertexData(data textmesh.VertexData) error {
	if m.closed {
		return textmesh.ErrReleased
	}
	if m.usage == textmesh.UsageStatic {
		return textmesh.ErrStaticModel
	}
	if len(data.Attributes) != len(m.buffers) {
		return ErrAttributeMismatch
	}

	raws := make([][]byte, len(m.buffers))
	grown := make([]vertexBuffer, len(m.buffers))
	for i, a := range data.Attributes {
		vb := m.buffers[i]
		if a.Name != vb.name || a.Components != vb.components {
			m.destroyGrown(grown)
			return fmt.Errorf("%w: %s", ErrAttributeMismatch, a.Name)
		}
		raws[i] = floatBytes(a.Data)
		if need := uint64(len(raws[i])); need > vb.capacity {
			buf, capacity, err := m.ctx.createBuffer("vertex_"+a.Name, m.capacityFor(len(raws[i])), vertexUsage)
			if err != nil {
				m.destroyGrown(grown)
				return err
			}
			grown[i] = vertexBuffer{name: vb.name, components: vb.components, buf: buf, capacity: capacity}
		}
	}

	for i := range grown {
		if grown[i].buf == nil {
			continue
		}
		if err := m.ctx.writeBuffer(grown[i].buf, raws[i]); err != nil {
			m.destroyGrown(grown)
			return err
		}
		grown[i].used = uint64(len(raws[i]))
	}

	for i := range m.buffers {
		if grown[i].buf != nil {
			textmesh.Logger().Warn("wgpu: vertex buffer reallocated",
				"attribute", m.buffers[i].name,
				"old_bytes", m.buffers[i].capacity,
				"new_bytes", grown[i].capacity)
			m.ctx.destroyBuffer(m.buffers[i].buf, m.buffers[i].capacity)
			m.buffers[i] = grown[i]
			m.ctx.stats.Reallocations++
		}
	}

	for i := range m.buffers {
		if grown[i].buf != nil {
			continue
		}
		if err := m.ctx.writeBuffer(m.buffers[i].buf, raws[i]); err != nil {
			m.vertexCount = 0
			return err
		}
		m.buffers[i].used = uint64(len(raws[i]))
	}
	m.vertexCount = data.VertexCount()
	textmesh.Logger().Debug("wgpu: model updated", "vertices", m.vertexCount)
	return nil
}

func (m *Model) destroyGrown(grown []vertexBuffer) {
	for _, vb := range grown {
		m.ctx.destroyBuffer(vb.buf, vb.capacity)
	}
}

// Usage returns the usage hint the model was created with.
func (m *Model) Usage() textmesh.UsageHint { return m.usage }

// VertexCount returns the number of vertices to draw.
func (m *Model) VertexCount() int { return m.vertexCount }

// Layouts returns the vertex buffer layouts, one per buffer slot.
func (m *Model) Layouts() []gputypes.VertexBufferLayout { return m.layouts }

// Buffer returns the vertex buffer of attribute name, its allocated size
// and the bytes in use.
func (m *Model) Buffer(name string) (buf hal.Buffer, capacity, used uint64, ok bool) {
	for _, vb := range m.buffers {
		if vb.name == name {
			return vb.buf, vb.capacity, vb.used, true
		}
	}
	return nil, 0, 0, false
}

// Close destroys the vertex buffers.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, vb := range m.buffers {
		m.ctx.destroyBuffer(vb.buf, vb.capacity)
	}
	m.buffers = nil
}

// floatBytes encodes v as little-endian bytes.
func floatBytes(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}
