package textmesh

// LineMetrics describes the extent of a text block in cells.
type LineMetrics struct {
	// Longest is the rune count of the longest line.
	Longest int

	// Lines is the number of line breaks in the text. A text without
	// breaks has Lines == 0.
	Lines int
}

// IsLineBreak reports whether r starts a new line. '\n' and '\r' each count
// as one break, so "\r\n" advances two rows.
func IsLineBreak(r rune) bool {
	return r == '\n' || r == '\r'
}

// MeasureLines scans text once and returns its line metrics. Break runes
// contribute nothing to line length.
func MeasureLines(text string) LineMetrics {
	var m LineMetrics
	current := 0
	for _, r := range text {
		if IsLineBreak(r) {
			current = 0
			m.Lines++
			continue
		}
		current++
		if current > m.Longest {
			m.Longest = current
		}
	}
	return m
}
