// Package export writes text meshes to interchange formats: Wavefront OBJ
// for 3D tools and a PDF wireframe for inspecting layout on paper.
package export

import (
	"errors"
	"math"

	"github.com/gogpu/textmesh"
)

// ErrNoObjects is returned when there is nothing to export.
var ErrNoObjects = errors.New("export: no objects")

// Object is a named mesh placed in the world by a model matrix.
type Object struct {
	Name      string
	Mesh      textmesh.Mesh
	Transform textmesh.Mat4
}

// FromRenderer captures the current mesh and transform of r.
func FromRenderer(name string, r *textmesh.Renderer) Object {
	pos, rot, scale := r.Transform()
	return Object{
		Name:      name,
		Mesh:      r.Mesh(),
		Transform: textmesh.ModelMatrix(pos, rot, scale),
	}
}

// WorldPositions returns the mesh positions transformed by the model matrix.
func (o Object) WorldPositions() []textmesh.Vec3 {
	n := len(o.Mesh.Positions) / textmesh.PositionComponents
	out := make([]textmesh.Vec3, n)
	for i := range out {
		p := o.Mesh.Positions[i*textmesh.PositionComponents:]
		out[i] = o.Transform.TransformPoint(textmesh.V3(p[0], p[1], p[2]))
	}
	return out
}

// bounds is an XY bounding box.
type bounds struct {
	minX, minY, maxX, maxY float64
}

func emptyBounds() bounds {
	return bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (b *bounds) add(p textmesh.Vec3) {
	b.minX = math.Min(b.minX, float64(p.X))
	b.minY = math.Min(b.minY, float64(p.Y))
	b.maxX = math.Max(b.maxX, float64(p.X))
	b.maxY = math.Max(b.maxY, float64(p.Y))
}

func (b bounds) empty() bool { return b.minX > b.maxX }

func (b bounds) width() float64  { return b.maxX - b.minX }
func (b bounds) height() float64 { return b.maxY - b.minY }
