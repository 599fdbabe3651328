package textmesh

import (
	"errors"
	"testing"
)

func TestAlignmentOffset(t *testing.T) {
	// longest = 4, lines = 2: halfWidth = 2.5, halfHeight = 1
	tests := []struct {
		a    Alignment
		want Vec2
	}{
		{LeftEdge, V2(0, -0.5)},
		{LeftLowerCorner, V2(0, -2)},
		{LeftUpperCorner, V2(0, 1)},
		{RightEdge, V2(-4, -0.5)},
		{RightLowerCorner, V2(-4, -2)},
		{RightUpperCorner, V2(-4, 1)},
		{Center, V2(-2, -0.5)},
		{UpperEdge, V2(-2, 1)},
		{LowerEdge, V2(-2, -2)},
	}
	for _, tt := range tests {
		t.Run(tt.a.String(), func(t *testing.T) {
			got := tt.a.Offset(4, 2)
			if got != tt.want {
				t.Errorf("%v.Offset(4, 2) = %v, want %v", tt.a, got, tt.want)
			}
		})
	}
}

func TestAlignmentCenterSingleLine(t *testing.T) {
	got := Center.Offset(4, 0)
	// halfWidth = 4/2 + 0.5, so X = 0.5 - 2.5.
	if got.X != -2 {
		t.Errorf("Center.Offset(4, 0).X = %v, want -2", got.X)
	}
	if got.Y != 0.5 {
		t.Errorf("Center.Offset(4, 0).Y = %v, want 0.5", got.Y)
	}
}

func TestAlignmentOffsetPanicsOnUnknown(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Offset on unknown alignment did not panic")
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %T, want error", r)
		}
		var ue *UnhandledAlignmentError
		if !errors.As(err, &ue) {
			t.Fatalf("panic value %v, want *UnhandledAlignmentError", err)
		}
		if ue.Alignment != Alignment(42) {
			t.Errorf("UnhandledAlignmentError.Alignment = %d, want 42", ue.Alignment)
		}
	}()
	Alignment(42).Offset(1, 1)
}

func TestParseAlignment(t *testing.T) {
	for a := LeftEdge; a <= Center; a++ {
		got, err := ParseAlignment(a.String())
		if err != nil {
			t.Fatalf("ParseAlignment(%q) error = %v", a.String(), err)
		}
		if got != a {
			t.Errorf("ParseAlignment(%q) = %v, want %v", a.String(), got, a)
		}
	}
	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("ParseAlignment(\"middle\") should fail")
	}
}

func TestAlignmentUnmarshalText(t *testing.T) {
	var a Alignment
	if err := a.UnmarshalText([]byte("right_lower_corner")); err != nil {
		t.Fatalf("UnmarshalText error = %v", err)
	}
	if a != RightLowerCorner {
		t.Errorf("UnmarshalText = %v, want %v", a, RightLowerCorner)
	}
	if _, err := Alignment(-1).MarshalText(); err == nil {
		t.Error("MarshalText on invalid alignment should fail")
	}
}

func TestAlignmentString(t *testing.T) {
	if got := Alignment(99).String(); got != "Alignment(99)" {
		t.Errorf("Alignment(99).String() = %q, want %q", got, "Alignment(99)")
	}
	if got := LeftUpperCorner.String(); got != "left_upper_corner" {
		t.Errorf("LeftUpperCorner.String() = %q", got)
	}
}
