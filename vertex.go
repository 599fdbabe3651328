package textmesh

import "github.com/gogpu/gputypes"

// Vertex attribute names shared with the alpha-cutoff shader.
const (
	AttributePosition = "a_Position"
	AttributeUV       = "a_UV"
)

// Components per vertex for each attribute.
const (
	PositionComponents = 3
	UVComponents       = 2
)

// UsageHint declares whether a model's vertex data will change after
// creation.
type UsageHint int

const (
	// UsageStatic marks vertex data that is uploaded once and never changes.
	UsageStatic UsageHint = iota

	// UsageDynamic marks vertex data that is replaced in place.
	UsageDynamic
)

// String returns "static" or "dynamic".
func (h UsageHint) String() string {
	switch h {
	case UsageStatic:
		return "static"
	case UsageDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// VertexAttribute is one named stream of float components.
type VertexAttribute struct {
	Name       string
	Data       []float32
	Components int
}

// VertexCount returns the number of vertices in the stream.
func (a VertexAttribute) VertexCount() int {
	if a.Components == 0 {
		return 0
	}
	return len(a.Data) / a.Components
}

// Format returns the GPU vertex format for one element of the stream.
func (a VertexAttribute) Format() gputypes.VertexFormat {
	switch a.Components {
	case 1:
		return gputypes.VertexFormatFloat32
	case 2:
		return gputypes.VertexFormatFloat32x2
	case 3:
		return gputypes.VertexFormatFloat32x3
	default:
		return gputypes.VertexFormatFloat32x4
	}
}

// VertexData is the named-attribute bundle handed to a Context.
type VertexData struct {
	Usage      UsageHint
	Attributes []VertexAttribute
}

// Attribute returns the stream called name.
func (d VertexData) Attribute(name string) (VertexAttribute, bool) {
	for _, a := range d.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return VertexAttribute{}, false
}

// VertexCount returns the vertex count of the first attribute.
func (d VertexData) VertexCount() int {
	if len(d.Attributes) == 0 {
		return 0
	}
	return d.Attributes[0].VertexCount()
}

// Layouts returns one vertex buffer layout per attribute. Attributes are
// stored as separate streams, so attribute i is bound at shader location i
// from buffer slot i.
func (d VertexData) Layouts() []gputypes.VertexBufferLayout {
	layouts := make([]gputypes.VertexBufferLayout, len(d.Attributes))
	for i, a := range d.Attributes {
		layouts[i] = gputypes.VertexBufferLayout{
			ArrayStride: uint64(a.Components * 4), //nolint:gosec // component count is 1..4
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: a.Format(), Offset: 0, ShaderLocation: uint32(i)}, //nolint:gosec // attribute count is small
			},
		}
	}
	return layouts
}
