package textmesh

import "testing"

func TestMeasureLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LineMetrics
	}{
		{"empty", "", LineMetrics{0, 0}},
		{"single line", "Hello", LineMetrics{Longest: 5, Lines: 0}},
		{"two lines", "AB\nCD", LineMetrics{Longest: 2, Lines: 1}},
		{"longest last", "A\nBCD", LineMetrics{Longest: 3, Lines: 1}},
		{"longest first", "ABCD\nE\nFG", LineMetrics{Longest: 4, Lines: 2}},
		{"breaks only", "\n\n\n", LineMetrics{Longest: 0, Lines: 3}},
		{"carriage return counts", "AB\rC", LineMetrics{Longest: 2, Lines: 1}},
		{"crlf is two breaks", "AB\r\nC", LineMetrics{Longest: 2, Lines: 2}},
		{"trailing break", "ABC\n", LineMetrics{Longest: 3, Lines: 1}},
		{"multibyte runes count once", "héllo", LineMetrics{Longest: 5, Lines: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MeasureLines(tt.text)
			if got != tt.want {
				t.Errorf("MeasureLines(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsLineBreak(t *testing.T) {
	for _, r := range []rune{'\n', '\r'} {
		if !IsLineBreak(r) {
			t.Errorf("IsLineBreak(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{' ', '\t', '\v', 'n', 0x2028} {
		if IsLineBreak(r) {
			t.Errorf("IsLineBreak(%q) = true, want false", r)
		}
	}
}
