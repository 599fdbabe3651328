package textmesh

import "fmt"

// Alignment anchors the whole text block relative to its local origin.
type Alignment int

const (
	// LeftEdge places the origin at the center of the left edge.
	LeftEdge Alignment = iota

	// RightEdge places the origin at the center of the right edge.
	RightEdge

	// UpperEdge places the origin at the center of the upper edge.
	UpperEdge

	// LowerEdge places the origin at the center of the lower edge.
	LowerEdge

	// LeftUpperCorner places the origin at the upper left corner.
	LeftUpperCorner

	// LeftLowerCorner places the origin at the lower left corner.
	LeftLowerCorner

	// RightUpperCorner places the origin at the upper right corner.
	RightUpperCorner

	// RightLowerCorner places the origin at the lower right corner.
	RightLowerCorner

	// Center places the origin at the center of the text block.
	Center
)

var alignmentNames = [...]string{
	LeftEdge:         "left_edge",
	RightEdge:        "right_edge",
	UpperEdge:        "upper_edge",
	LowerEdge:        "lower_edge",
	LeftUpperCorner:  "left_upper_corner",
	LeftLowerCorner:  "left_lower_corner",
	RightUpperCorner: "right_upper_corner",
	RightLowerCorner: "right_lower_corner",
	Center:           "center",
}

// Valid reports whether a is one of the nine enumerated modes.
func (a Alignment) Valid() bool {
	return a >= LeftEdge && a <= Center
}

// String returns the snake_case name of the alignment.
func (a Alignment) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

// ParseAlignment returns the alignment named s (e.g. "left_upper_corner").
func ParseAlignment(s string) (Alignment, error) {
	for i, name := range alignmentNames {
		if name == s {
			return Alignment(i), nil
		}
	}
	return 0, fmt.Errorf("textmesh: unknown alignment %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, &UnhandledAlignmentError{Alignment: a}
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(text []byte) error {
	v, err := ParseAlignment(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Offset returns the translation applied to every glyph quad of a text block
// with the given line metrics. Callers add X and subtract Y, because rows grow
// downward while world Y grows upward.
//
// Offset panics with *UnhandledAlignmentError for a value outside the
// enumerated set.
func (a Alignment) Offset(longestLineLength, lineCount int) Vec2 {
	width := float32(longestLineLength)
	halfWidth := width/2 + 0.5

	height := float32(lineCount)
	halfHeight := height / 2

	switch a {
	case LeftEdge:
		return Vec2{0, 0.5 - halfHeight}
	case LeftLowerCorner:
		return Vec2{0, -height}
	case LeftUpperCorner:
		return Vec2{0, 1}

	case RightEdge:
		return Vec2{-width, 0.5 - halfHeight}
	case RightLowerCorner:
		return Vec2{-width, -height}
	case RightUpperCorner:
		return Vec2{-width, 1}

	case Center:
		return Vec2{0.5 - halfWidth, 0.5 - halfHeight}
	case UpperEdge:
		return Vec2{0.5 - halfWidth, 1}
	case LowerEdge:
		return Vec2{0.5 - halfWidth, -height}

	default:
		panic(&UnhandledAlignmentError{Alignment: a})
	}
}
