package textmesh

import (
	"errors"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestNewStatic(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewStatic(ctx, newTestGlyphMap(), Center, "Hello\nWorld")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	if len(ctx.models) != 1 || len(ctx.entities) != 1 || len(ctx.materials) != 1 {
		t.Fatalf("created %d models, %d entities, %d materials, want 1 each",
			len(ctx.models), len(ctx.entities), len(ctx.materials))
	}
	if ctx.models[0].usage != UsageStatic {
		t.Errorf("model usage = %v, want static", ctx.models[0].usage)
	}
	if got := ctx.models[0].data.VertexCount(); got != 10*QuadVertices {
		t.Errorf("vertex count = %d, want %d", got, 10*QuadVertices)
	}
	e := ctx.entities[0]
	if e.model != ctx.models[0] || e.material != ctx.materials[0] {
		t.Error("entity not built from the renderer's model and material")
	}
	if r.Text() != "Hello\nWorld" || r.Policy() != PolicyStatic || r.Alignment() != Center {
		t.Errorf("Text/Policy/Alignment = %q/%v/%v", r.Text(), r.Policy(), r.Alignment())
	}
	if r.Metrics() != (LineMetrics{Longest: 5, Lines: 1}) {
		t.Errorf("Metrics() = %+v", r.Metrics())
	}
	if r.Entity() != Entity(e) || r.Model() != Model(ctx.models[0]) {
		t.Error("accessors do not return the created handles")
	}
}

func TestStaticUpdateText(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewStatic(ctx, newTestGlyphMap(), LeftEdge, "fixed")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	if err := r.UpdateText("changed"); !errors.Is(err, ErrImmutableText) {
		t.Errorf("UpdateText() error = %v, want ErrImmutableText", err)
	}
	if r.Text() != "fixed" || ctx.models[0].updates != 0 {
		t.Errorf("static renderer changed: text %q, %d updates", r.Text(), ctx.models[0].updates)
	}
}

func TestDynamicUpdateText(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewDynamic(ctx, newTestGlyphMap(), LeftUpperCorner, "0")
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	model := ctx.models[0]
	if model.usage != UsageDynamic {
		t.Errorf("model usage = %v, want dynamic", model.usage)
	}

	if err := r.UpdateText("0"); err != nil {
		t.Fatalf("UpdateText(same) error = %v", err)
	}
	if model.updates != 0 {
		t.Errorf("updates after unchanged text = %d, want 0", model.updates)
	}

	for range 2 {
		if err := r.UpdateText("100"); err != nil {
			t.Fatalf("UpdateText() error = %v", err)
		}
	}
	if model.updates != 1 {
		t.Errorf("updates after two identical UpdateText calls = %d, want 1", model.updates)
	}
	if got := model.data.VertexCount(); got != 3*QuadVertices {
		t.Errorf("vertex count = %d, want %d", got, 3*QuadVertices)
	}
	if len(ctx.models) != 1 || len(ctx.entities) != 1 {
		t.Errorf("rebuild created %d models, %d entities, want 1 each", len(ctx.models), len(ctx.entities))
	}
	if r.Text() != "100" || r.Mesh().Quads() != 3 {
		t.Errorf("Text() = %q, Quads() = %d", r.Text(), r.Mesh().Quads())
	}
}

func TestDynamicUpdateToEmpty(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewDynamic(ctx, newTestGlyphMap(), Center, "abc")
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	if err := r.UpdateText(""); err != nil {
		t.Fatalf("UpdateText(\"\") error = %v", err)
	}
	if !r.Mesh().IsEmpty() || ctx.models[0].data.VertexCount() != 0 {
		t.Errorf("mesh not empty after UpdateText(\"\")")
	}
}

func TestDynamicInitialText(t *testing.T) {
	tests := []struct {
		text  string
		quads int
	}{
		{" ", 1},
		{"", 0},
	}
	for _, tt := range tests {
		r, err := NewDynamic(newRecordingContext(), newTestGlyphMap(), Center, tt.text)
		if err != nil {
			t.Fatalf("NewDynamic(%q) error = %v", tt.text, err)
		}
		if r.Text() != tt.text || r.Mesh().Quads() != tt.quads {
			t.Errorf("NewDynamic(%q): Text() = %q, Quads() = %d, want %d", tt.text, r.Text(), r.Mesh().Quads(), tt.quads)
		}
		// The initial text is cached, so repeating it does not rebuild.
		if err := r.UpdateText(tt.text); err != nil {
			t.Errorf("UpdateText(%q) error = %v", tt.text, err)
		}
	}
}

func TestDynamicUpdateFailureKeepsPrevious(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewDynamic(ctx, newTestGlyphMap(), Center, "ok")
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	before := r.Mesh()

	if err := r.UpdateText("☃"); !errors.Is(err, ErrMissingGlyph) {
		t.Fatalf("UpdateText() error = %v, want ErrMissingGlyph", err)
	}
	if r.Text() != "ok" || r.Mesh().Quads() != before.Quads() {
		t.Errorf("after failed update: Text() = %q, Quads() = %d", r.Text(), r.Mesh().Quads())
	}
	if ctx.models[0].updates != 0 {
		t.Errorf("model updated %d times, want 0", ctx.models[0].updates)
	}

	ctx.models[0].failing = errBackend
	if err := r.UpdateText("new"); !errors.Is(err, errBackend) {
		t.Fatalf("UpdateText() error = %v, want %v", err, errBackend)
	}
	if r.Text() != "ok" {
		t.Errorf("Text() = %q after backend failure, want ok", r.Text())
	}

	// The same text is retried after the backend recovers.
	ctx.models[0].failing = nil
	if err := r.UpdateText("new"); err != nil {
		t.Fatalf("UpdateText() retry error = %v", err)
	}
	if r.Text() != "new" || ctx.models[0].updates != 1 {
		t.Errorf("retry: Text() = %q, updates = %d", r.Text(), ctx.models[0].updates)
	}
}

func TestRendererVisibility(t *testing.T) {
	r, err := NewStatic(newRecordingContext(), newTestGlyphMap(), Center, "x")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	if r.IsHidden() {
		t.Error("new renderer is hidden")
	}
	r.Hide()
	if !r.IsHidden() {
		t.Error("IsHidden() = false after Hide()")
	}
	r.Show()
	if r.IsHidden() {
		t.Error("IsHidden() = true after Show()")
	}
}

func TestRendererTransform(t *testing.T) {
	ctx := newRecordingContext()
	pos := V3(1, 2, 3)
	rot := QuatFromAxisAngle(V3(0, 0, 1), 0.5)
	scale := V3(2, 2, 2)

	r, err := NewDynamic(ctx, newTestGlyphMap(), Center, "a", WithTransform(pos, rot, scale))
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	e := ctx.entities[0]
	if got := e.lastMatrix(); got != (modelMatrix{pos, rot, scale}) {
		t.Errorf("initial matrix = %+v", got)
	}

	pos2 := V3(-4, 0, 0)
	r.SetTransform(pos2, IdentityQuat(), One)
	if err := r.UpdateText("bb"); err != nil {
		t.Fatalf("UpdateText() error = %v", err)
	}
	if got := e.lastMatrix(); got != (modelMatrix{pos2, IdentityQuat(), One}) {
		t.Errorf("matrix after rebuild = %+v", got)
	}
	gotPos, gotRot, gotScale := r.Transform()
	if gotPos != pos2 || gotRot != IdentityQuat() || gotScale != One {
		t.Errorf("Transform() = %v, %v, %v", gotPos, gotRot, gotScale)
	}
}

func TestRendererDefaultTransform(t *testing.T) {
	ctx := newRecordingContext()
	if _, err := NewStatic(ctx, newTestGlyphMap(), Center, "a"); err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	if got := ctx.entities[0].lastMatrix(); got != (modelMatrix{Vec3{}, IdentityQuat(), One}) {
		t.Errorf("default matrix = %+v", got)
	}
}

func TestRendererScene(t *testing.T) {
	r, err := NewStatic(newRecordingContext(), newTestGlyphMap(), Center, "s")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	a, b := newFakeScene(), newFakeScene()

	// Removing before adding is harmless.
	r.RemoveFromScene(a)
	if len(a.entities) != 0 {
		t.Errorf("scene holds %d entities, want 0", len(a.entities))
	}

	r.AddToScene(a)
	r.AddToScene(b)
	if a.entities[r.Entity()] != 1 || b.entities[r.Entity()] != 1 {
		t.Error("entity not registered with both scenes")
	}
	r.RemoveFromScene(a)
	if _, ok := a.entities[r.Entity()]; ok {
		t.Error("entity still in scene a after RemoveFromScene")
	}
	if b.entities[r.Entity()] != 1 {
		t.Error("removing from scene a affected scene b")
	}
}

func TestWithMaterial(t *testing.T) {
	ctx := newRecordingContext()
	custom := &fakeMaterial{textures: map[string]Texture{}, vec2s: map[string]Vec2{}}

	r, err := NewStatic(ctx, newTestGlyphMap(), Center, "m", WithMaterial(custom))
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	if len(ctx.materials) != 0 {
		t.Errorf("default material created despite WithMaterial")
	}
	if ctx.entities[0].material != Material(custom) || r.Material() != Material(custom) {
		t.Error("entity does not use the custom material")
	}
	r.Close()
	if custom.closed {
		t.Error("Close() closed a caller-owned material")
	}
}

func TestWithNormalization(t *testing.T) {
	const decomposed = "e\u0301"

	ctx := newRecordingContext()
	glyphs := latin1GlyphMap{newTestGlyphMap()}
	if _, err := NewStatic(ctx, glyphs, Center, decomposed); err == nil {
		t.Fatal("NewStatic() without normalization accepted a combining mark")
	}

	r, err := NewDynamic(ctx, glyphs, Center, decomposed, WithNormalization(norm.NFC))
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	if r.Mesh().Quads() != 1 {
		t.Errorf("Quads() = %d, want 1", r.Mesh().Quads())
	}
	if r.Text() != decomposed {
		t.Errorf("Text() = %q, want the caller's string", r.Text())
	}
}

// latin1GlyphMap extends the test atlas with 'é' in its last cell.
type latin1GlyphMap struct{ *testGlyphMap }

func (g latin1GlyphMap) RasterCoordinate(r rune) (Cell, error) {
	if r == 'é' {
		return Cell{Col: 15, Row: 5}, nil
	}
	return g.testGlyphMap.RasterCoordinate(r)
}

func TestNewRendererErrors(t *testing.T) {
	glyphs := newTestGlyphMap()

	if _, err := NewStatic(nil, glyphs, Center, "x"); !errors.Is(err, ErrNilContext) {
		t.Errorf("nil context error = %v", err)
	}
	if _, err := NewDynamic(newRecordingContext(), nil, Center, "x"); !errors.Is(err, ErrNilGlyphMap) {
		t.Errorf("nil glyph map error = %v", err)
	}
	var ua *UnhandledAlignmentError
	if _, err := NewStatic(newRecordingContext(), glyphs, Alignment(42), "x"); !errors.As(err, &ua) {
		t.Errorf("invalid alignment error = %v", err)
	}
}

func TestNewRendererBackendFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*recordingContext)
	}{
		{"shader", func(c *recordingContext) { c.shaderErr = errBackend }},
		{"model", func(c *recordingContext) { c.modelErr = errBackend }},
		{"entity", func(c *recordingContext) { c.entityErr = errBackend }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := newRecordingContext()
			tt.setup(ctx)
			r, err := NewStatic(ctx, newTestGlyphMap(), Center, "x")
			if !errors.Is(err, errBackend) || r != nil {
				t.Fatalf("NewStatic() = %v, %v, want nil, %v", r, err, errBackend)
			}
			for _, m := range ctx.materials {
				if !m.closed {
					t.Error("default material leaked after failed construction")
				}
			}
			for _, m := range ctx.models {
				if !m.closed {
					t.Error("model leaked after failed construction")
				}
			}
		})
	}
}

func TestNewRendererMissingGlyph(t *testing.T) {
	ctx := newRecordingContext()
	if _, err := NewStatic(ctx, newTestGlyphMap(), Center, "☃"); !errors.Is(err, ErrMissingGlyph) {
		t.Fatalf("NewStatic() error = %v, want ErrMissingGlyph", err)
	}
	if len(ctx.models) != 0 {
		t.Errorf("model created for unbuildable text")
	}
}

func TestRendererClose(t *testing.T) {
	ctx := newRecordingContext()
	r, err := NewDynamic(ctx, newTestGlyphMap(), Center, "bye")
	if err != nil {
		t.Fatalf("NewDynamic() error = %v", err)
	}
	r.Close()
	if !ctx.entities[0].closed || !ctx.models[0].closed || !ctx.materials[0].closed {
		t.Error("Close() did not release entity, model and owned material")
	}
	if r.Entity() != nil || r.Model() != nil || r.Material() != nil {
		t.Error("handles not cleared by Close()")
	}
}
