// Package headless implements textmesh.Context in memory.
//
// Models keep a private copy of their vertex data and textures keep a copy
// of their pixels, so a headless context can be inspected in tests, exported
// by the textmesh CLI and used where no GPU is present. The package registers
// itself with the backend registry as "headless".
package headless

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/backend"
)

// Name is the registry name of this backend.
const Name = "headless"

// AlphaCutoffShaderName names the shader returned by AlphaCutoffShader.
const AlphaCutoffShaderName = "alpha_cutoff"

func init() {
	backend.Register(Name, func() (backend.Backend, error) {
		return NewContext(), nil
	})
}

// Stats counts the resources a Context has created.
type Stats struct {
	Models    int
	Materials int
	Entities  int
	Textures  int

	// Uploads counts vertex data uploads, initial and updates.
	Uploads int

	// UploadedFloats sums the floats of every upload.
	UploadedFloats int
}

// Context is an in-memory graphics context. It is not safe for concurrent
// use.
type Context struct {
	shader *Shader
	stats  Stats
	closed bool
}

// NewContext creates an empty headless context.
func NewContext() *Context {
	textmesh.Logger().Info("headless: context created")
	return &Context{shader: &Shader{Name: AlphaCutoffShaderName}}
}

// Name returns "headless".
func (c *Context) Name() string { return Name }

// Close marks the context closed. Handles created earlier stay readable.
func (c *Context) Close() { c.closed = true }

// Stats returns resource counters.
func (c *Context) Stats() Stats { return c.stats }

// AlphaCutoffShader returns the shared alpha-cutoff shader.
func (c *Context) AlphaCutoffShader() (textmesh.Shader, error) {
	if c.closed {
		return nil, textmesh.ErrReleased
	}
	return c.shader, nil
}

// MakeMaterial creates a material for shader.
func (c *Context) MakeMaterial(shader textmesh.Shader) (textmesh.Material, error) {
	if c.closed {
		return nil, textmesh.ErrReleased
	}
	s, ok := shader.(*Shader)
	if !ok {
		return nil, fmt.Errorf("headless: shader %T: %w", shader, textmesh.ErrForeignHandle)
	}
	c.stats.Materials++
	return &Material{
		shader:   s,
		textures: make(map[string]textmesh.Texture),
		vec2s:    make(map[string]textmesh.Vec2),
	}, nil
}

// MakeModel copies data into a new model.
func (c *Context) MakeModel(data textmesh.VertexData) (textmesh.Model, error) {
	if c.closed {
		return nil, textmesh.ErrReleased
	}
	m := &Model{ctx: c, usage: data.Usage}
	m.store(data)
	c.stats.Models++
	return m, nil
}

// MakeEntity pairs a model created by c with material.
func (c *Context) MakeEntity(model textmesh.Model, material textmesh.Material) (textmesh.Entity, error) {
	if c.closed {
		return nil, textmesh.ErrReleased
	}
	m, ok := model.(*Model)
	if !ok || m.ctx != c {
		return nil, fmt.Errorf("headless: model %T: %w", model, textmesh.ErrForeignHandle)
	}
	c.stats.Entities++
	return &Entity{
		model:    m,
		material: material,
		rotation: textmesh.IdentityQuat(),
		scale:    textmesh.One,
	}, nil
}

// MakeTexture copies img into a texture.
func (c *Context) MakeTexture(img *image.RGBA) (textmesh.Texture, error) {
	if c.closed {
		return nil, textmesh.ErrReleased
	}
	if img == nil {
		return nil, errors.New("headless: nil image")
	}
	b := img.Bounds()
	t := &Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    make([]byte, 4*b.Dx()*b.Dy()),
	}
	for y := 0; y < t.Height; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(t.Pix[4*t.Width*y:4*t.Width*(y+1)], row[:4*t.Width])
	}
	c.stats.Textures++
	textmesh.Logger().Debug("headless: texture created", "width", t.Width, "height", t.Height)
	return t, nil
}
