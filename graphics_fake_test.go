package textmesh

import "errors"

// testGlyphMap lays printable ASCII out on a 16x6 grid.
type testGlyphMap struct {
	cols, rows int
	texture    Texture
}

func newTestGlyphMap() *testGlyphMap {
	return &testGlyphMap{cols: 16, rows: 6, texture: "atlas"}
}

func (g *testGlyphMap) RasterCoordinate(r rune) (Cell, error) {
	if r < ' ' || r > '~' {
		return Cell{}, &MissingGlyphError{Rune: r}
	}
	i := int(r - ' ')
	return Cell{Col: i % g.cols, Row: i / g.cols}, nil
}

func (g *testGlyphMap) SizeInCells() (int, int) { return g.cols, g.rows }
func (g *testGlyphMap) Texture() Texture         { return g.texture }

// singleCellGlyphMap maps every rune to the only cell of a grid.
type singleCellGlyphMap struct {
	cols, rows int
	cell       Cell
}

func (g singleCellGlyphMap) RasterCoordinate(rune) (Cell, error) { return g.cell, nil }
func (g singleCellGlyphMap) SizeInCells() (int, int)             { return g.cols, g.rows }
func (g singleCellGlyphMap) Texture() Texture                    { return nil }

type fakeShader struct{ name string }

type fakeMaterial struct {
	shader   Shader
	textures map[string]Texture
	vec2s    map[string]Vec2
	closed   bool
}

func (m *fakeMaterial) SetTexture(name string, t Texture) { m.textures[name] = t }
func (m *fakeMaterial) SetVec2(name string, v Vec2)       { m.vec2s[name] = v }
func (m *fakeMaterial) Close()                            { m.closed = true }

type fakeModel struct {
	usage   UsageHint
	data    VertexData
	updates int
	closed  bool
	failing error
}

func (m *fakeModel) UpdateVertexData(d VertexData) error {
	if m.failing != nil {
		return m.failing
	}
	m.updates++
	m.data = d
	return nil
}

func (m *fakeModel) Close() { m.closed = true }

type modelMatrix struct {
	pos   Vec3
	rot   Quat
	scale Vec3
}

type fakeEntity struct {
	model    Model
	material Material
	hidden   bool
	matrices []modelMatrix
	closed   bool
}

func (e *fakeEntity) SetModelMatrix(pos Vec3, rot Quat, scale Vec3) {
	e.matrices = append(e.matrices, modelMatrix{pos, rot, scale})
}
func (e *fakeEntity) Hide()          { e.hidden = true }
func (e *fakeEntity) Show()          { e.hidden = false }
func (e *fakeEntity) IsHidden() bool { return e.hidden }
func (e *fakeEntity) Close()         { e.closed = true }

func (e *fakeEntity) lastMatrix() modelMatrix {
	return e.matrices[len(e.matrices)-1]
}

// recordingContext records every handle it creates.
type recordingContext struct {
	models    []*fakeModel
	materials []*fakeMaterial
	entities  []*fakeEntity

	shaderErr error
	modelErr  error
	entityErr error
}

func newRecordingContext() *recordingContext {
	return &recordingContext{}
}

func (c *recordingContext) AlphaCutoffShader() (Shader, error) {
	if c.shaderErr != nil {
		return nil, c.shaderErr
	}
	return &fakeShader{name: "alpha_cutoff"}, nil
}

func (c *recordingContext) MakeMaterial(s Shader) (Material, error) {
	m := &fakeMaterial{shader: s, textures: map[string]Texture{}, vec2s: map[string]Vec2{}}
	c.materials = append(c.materials, m)
	return m, nil
}

func (c *recordingContext) MakeModel(d VertexData) (Model, error) {
	if c.modelErr != nil {
		return nil, c.modelErr
	}
	m := &fakeModel{usage: d.Usage, data: d}
	c.models = append(c.models, m)
	return m, nil
}

func (c *recordingContext) MakeEntity(model Model, mat Material) (Entity, error) {
	if c.entityErr != nil {
		return nil, c.entityErr
	}
	e := &fakeEntity{model: model, material: mat}
	c.entities = append(c.entities, e)
	return e, nil
}

// fakeScene counts registrations per entity.
type fakeScene struct {
	entities map[Entity]int
}

func newFakeScene() *fakeScene { return &fakeScene{entities: map[Entity]int{}} }

func (s *fakeScene) AddEntity(e Entity) { s.entities[e]++ }
func (s *fakeScene) RemoveEntity(e Entity) {
	if s.entities[e] == 0 {
		return
	}
	delete(s.entities, e)
}

var errBackend = errors.New("backend failure")
