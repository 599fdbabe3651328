package textmesh

import "fmt"

// Policy selects when a Renderer rebuilds its mesh.
type Policy int

const (
	// PolicyStatic builds the mesh once at construction, with UsageStatic.
	PolicyStatic Policy = iota

	// PolicyDynamic rebuilds the mesh in place, with UsageDynamic, whenever
	// UpdateText receives a different string.
	PolicyDynamic
)

// String returns "static" or "dynamic".
func (p Policy) String() string {
	return p.Usage().String()
}

// Usage returns the vertex usage hint models are created with.
func (p Policy) Usage() UsageHint {
	if p == PolicyDynamic {
		return UsageDynamic
	}
	return UsageStatic
}

// Renderer turns a string into a textured mesh entity.
//
// A Renderer is not safe for concurrent use; it calls its Context and
// Scene synchronously and expects to be confined to the render thread.
type Renderer struct {
	ctx       Context
	glyphs    GlyphMap
	alignment Alignment
	policy    Policy

	material     Material
	ownsMaterial bool
	model        Model
	entity       Entity

	position Vec3
	rotation Quat
	scale    Vec3

	text      string
	mesh      Mesh
	normalize func(string) string
	label     string
}

// NewStatic creates a renderer whose mesh is built once from text and never
// changes.
func NewStatic(ctx Context, glyphs GlyphMap, a Alignment, text string, opts ...Option) (*Renderer, error) {
	return newRenderer(ctx, glyphs, a, PolicyStatic, text, opts)
}

// NewDynamic creates a renderer whose mesh follows UpdateText. There is no
// implicit initial text; pass " " for a one-cell placeholder or "" for an
// empty mesh.
func NewDynamic(ctx Context, glyphs GlyphMap, a Alignment, text string, opts ...Option) (*Renderer, error) {
	return newRenderer(ctx, glyphs, a, PolicyDynamic, text, opts)
}

func newRenderer(ctx Context, glyphs GlyphMap, a Alignment, p Policy, text string, opts []Option) (*Renderer, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	if glyphs == nil {
		return nil, ErrNilGlyphMap
	}
	if !a.Valid() {
		return nil, &UnhandledAlignmentError{Alignment: a}
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		ctx:       ctx,
		glyphs:    glyphs,
		alignment: a,
		policy:    p,
		material:  o.material,
		position:  o.position,
		rotation:  o.rotation,
		scale:     o.scale,
		normalize: o.normalize,
		label:     o.label,
	}
	if r.material == nil {
		mat, err := NewDefaultMaterial(ctx, glyphs)
		if err != nil {
			return nil, err
		}
		r.material = mat
		r.ownsMaterial = true
	}

	if err := r.build(text); err != nil {
		r.Close()
		return nil, err
	}
	r.text = text
	return r, nil
}

// build lays out text and replaces the model's vertex data. On error the
// model, entity and cached mesh are left as they were.
func (r *Renderer) build(text string) error {
	src := text
	if r.normalize != nil {
		src = r.normalize(text)
	}
	mesh, err := BuildMesh(r.glyphs, src, r.alignment)
	if err != nil {
		return err
	}
	data := mesh.VertexData(r.policy.Usage())

	if r.model == nil {
		model, err := r.ctx.MakeModel(data)
		if err != nil {
			return fmt.Errorf("textmesh: make model: %w", err)
		}
		r.model = model
	} else if err := r.model.UpdateVertexData(data); err != nil {
		return fmt.Errorf("textmesh: update vertex data: %w", err)
	}

	if r.entity == nil {
		entity, err := r.ctx.MakeEntity(r.model, r.material)
		if err != nil {
			return fmt.Errorf("textmesh: make entity: %w", err)
		}
		r.entity = entity
		r.entity.SetModelMatrix(r.position, r.rotation, r.scale)
	}

	r.mesh = mesh
	Logger().Debug("textmesh: mesh built",
		"label", r.label,
		"policy", r.policy,
		"quads", mesh.Quads(),
		"lines", mesh.Metrics.Lines,
		"longest", mesh.Metrics.Longest)
	return nil
}

// UpdateText rebuilds the mesh for text. It does nothing when text equals
// the current text. A failed rebuild keeps the previous mesh and text.
//
// On a static renderer UpdateText returns ErrImmutableText.
func (r *Renderer) UpdateText(text string) error {
	if r.policy != PolicyDynamic {
		return ErrImmutableText
	}
	if text == r.text {
		return nil
	}
	if err := r.build(text); err != nil {
		return err
	}
	r.text = text
	return nil
}

// Hide prevents the text from being rendered.
func (r *Renderer) Hide() {
	r.entity.Hide()
}

// Show marks the text for rendering.
func (r *Renderer) Show() {
	r.entity.Show()
}

// IsHidden reports whether the text is hidden.
func (r *Renderer) IsHidden() bool {
	return r.entity.IsHidden()
}

// SetTransform sets position, rotation and scale of the text. The
// transform survives mesh rebuilds.
func (r *Renderer) SetTransform(pos Vec3, rot Quat, scale Vec3) {
	r.position = pos
	r.rotation = rot
	r.scale = scale
	r.entity.SetModelMatrix(pos, rot, scale)
}

// Transform returns the cached position, rotation and scale.
func (r *Renderer) Transform() (pos Vec3, rot Quat, scale Vec3) {
	return r.position, r.rotation, r.scale
}

// AddToScene registers the text's entity with s. A renderer can be added to
// several scenes.
func (r *Renderer) AddToScene(s Scene) {
	s.AddEntity(r.entity)
}

// RemoveFromScene unregisters the text's entity from s. Removing from a
// scene that does not contain it is not an error.
func (r *Renderer) RemoveFromScene(s Scene) {
	s.RemoveEntity(r.entity)
}

// Text returns the text of the current mesh.
func (r *Renderer) Text() string { return r.text }

// Metrics returns the line metrics of the current mesh.
func (r *Renderer) Metrics() LineMetrics { return r.mesh.Metrics }

// Mesh returns the current mesh. The slices must not be modified.
func (r *Renderer) Mesh() Mesh { return r.mesh }

// Alignment returns the alignment fixed at construction.
func (r *Renderer) Alignment() Alignment { return r.alignment }

// Policy returns the update policy fixed at construction.
func (r *Renderer) Policy() Policy { return r.policy }

// Entity returns the renderable entity.
func (r *Renderer) Entity() Entity { return r.entity }

// Model returns the model holding the vertex data.
func (r *Renderer) Model() Model { return r.model }

// Material returns the material the text renders with.
func (r *Renderer) Material() Material { return r.material }

// Close releases backend resources of the entity, the model and a material
// the renderer created itself. Handles that do not implement Closer are
// dropped. The renderer must not be used after Close.
func (r *Renderer) Close() {
	for _, h := range []any{r.entity, r.model} {
		if c, ok := h.(Closer); ok {
			c.Close()
		}
	}
	if r.ownsMaterial {
		if c, ok := r.material.(Closer); ok {
			c.Close()
		}
	}
	r.entity, r.model, r.material = nil, nil, nil
}
