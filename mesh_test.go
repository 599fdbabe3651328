package textmesh

import (
	"errors"
	"testing"
)

func TestBuildMeshLengths(t *testing.T) {
	tests := []struct {
		text  string
		quads int
	}{
		{"", 0},
		{"A", 1},
		{"Hello", 5},
		{"AB\nCD", 4},
		{"\n\n\n", 0},
		{"A\r\nB", 2},
		{"  ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			mesh, err := BuildMesh(newTestGlyphMap(), tt.text, Center)
			if err != nil {
				t.Fatalf("BuildMesh() error = %v", err)
			}
			if got := len(mesh.Positions); got != tt.quads*QuadPositionFloat {
				t.Errorf("len(Positions) = %d, want %d", got, tt.quads*QuadPositionFloat)
			}
			if got := len(mesh.UVs); got != tt.quads*QuadUVFloat {
				t.Errorf("len(UVs) = %d, want %d", got, tt.quads*QuadUVFloat)
			}
			if mesh.Quads() != tt.quads {
				t.Errorf("Quads() = %d, want %d", mesh.Quads(), tt.quads)
			}
			if mesh.IsEmpty() != (tt.quads == 0) {
				t.Errorf("IsEmpty() = %v, want %v", mesh.IsEmpty(), tt.quads == 0)
			}
		})
	}
}

func TestBuildMeshCells(t *testing.T) {
	mesh, err := BuildMesh(newTestGlyphMap(), "AB\nCD", LeftUpperCorner)
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	want := []Cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	if len(mesh.Cells) != len(want) {
		t.Fatalf("Cells = %v, want %v", mesh.Cells, want)
	}
	for i := range want {
		if mesh.Cells[i] != want[i] {
			t.Errorf("Cells[%d] = %v, want %v", i, mesh.Cells[i], want[i])
		}
	}
	if mesh.Metrics != (LineMetrics{Longest: 2, Lines: 1}) {
		t.Errorf("Metrics = %+v, want {2 1}", mesh.Metrics)
	}

	// The quad for "D" starts one column right of and one row below "A".
	d := mesh.Positions[3*QuadPositionFloat:]
	a := mesh.Positions[:QuadPositionFloat]
	if !approxEqual(d[0]-a[0], 1) || !approxEqual(d[1]-a[1], -1) {
		t.Errorf("D offset from A = (%v, %v), want (1, -1)", d[0]-a[0], d[1]-a[1])
	}
}

func TestBuildMeshBreaksOnly(t *testing.T) {
	mesh, err := BuildMesh(newTestGlyphMap(), "\n\n\n", Center)
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	if !mesh.IsEmpty() {
		t.Errorf("IsEmpty() = false, want true")
	}
	if mesh.Metrics.Lines != 3 || mesh.Metrics.Longest != 0 {
		t.Errorf("Metrics = %+v, want {Longest:0 Lines:3}", mesh.Metrics)
	}
}

func TestBuildMeshMatchesBuildQuad(t *testing.T) {
	glyphs := newTestGlyphMap()
	text := "hi\nyou"
	mesh, err := BuildMesh(glyphs, text, RightLowerCorner)
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	m := MeasureLines(text)
	runes := []rune("hiyou")
	for i, cell := range mesh.Cells {
		q, err := BuildQuad(glyphs, runes[i], cell, m, RightLowerCorner)
		if err != nil {
			t.Fatalf("BuildQuad() error = %v", err)
		}
		for j := range q.Positions {
			if mesh.Positions[i*QuadPositionFloat+j] != q.Positions[j] {
				t.Fatalf("quad %d position %d = %v, want %v", i, j, mesh.Positions[i*QuadPositionFloat+j], q.Positions[j])
			}
		}
		for j := range q.UVs {
			if mesh.UVs[i*QuadUVFloat+j] != q.UVs[j] {
				t.Fatalf("quad %d uv %d = %v, want %v", i, j, mesh.UVs[i*QuadUVFloat+j], q.UVs[j])
			}
		}
	}
}

func TestBuildMeshMissingGlyph(t *testing.T) {
	_, err := BuildMesh(newTestGlyphMap(), "ok\nnot ☃", Center)
	if !errors.Is(err, ErrMissingGlyph) {
		t.Fatalf("BuildMesh() error = %v, want ErrMissingGlyph", err)
	}
}

func TestMeshVertexData(t *testing.T) {
	mesh, err := BuildMesh(newTestGlyphMap(), "abc", Center)
	if err != nil {
		t.Fatalf("BuildMesh() error = %v", err)
	}
	data := mesh.VertexData(UsageDynamic)
	if data.Usage != UsageDynamic {
		t.Errorf("Usage = %v, want dynamic", data.Usage)
	}
	if got := data.VertexCount(); got != 3*QuadVertices {
		t.Errorf("VertexCount() = %d, want %d", got, 3*QuadVertices)
	}
	pos, ok := data.Attribute(AttributePosition)
	if !ok || pos.Components != PositionComponents || len(pos.Data) != len(mesh.Positions) {
		t.Errorf("Attribute(%q) = %+v, %v", AttributePosition, pos, ok)
	}
	uv, ok := data.Attribute(AttributeUV)
	if !ok || uv.Components != UVComponents || uv.VertexCount() != 3*QuadVertices {
		t.Errorf("Attribute(%q) = %+v, %v", AttributeUV, uv, ok)
	}
}
