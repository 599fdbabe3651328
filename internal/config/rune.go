package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseRune parses a single rune written as:
//   - a literal character ("?", "☺")
//   - a Unicode escape ("\u2588", "\U00002588")
//   - Unicode notation ("U+2588")
//   - hexadecimal ("0x3F")
//   - decimal ("63")
func ParseRune(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidRune)
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError {
			return 0, fmt.Errorf("%w: %q is not UTF-8", ErrInvalidRune, s)
		}
		return r, nil
	}

	var digits string
	base := 16
	switch {
	case strings.HasPrefix(s, `\u`) && len(s) == 6,
		strings.HasPrefix(s, `\U`) && len(s) == 10,
		strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
	default:
		digits, base = s, 10
	}
	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRune, s)
	}
	r := rune(code)
	if r < 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, fmt.Errorf("%w: %q is not a Unicode scalar value", ErrInvalidRune, s)
	}
	return r, nil
}

// Unescape turns the two-character sequences \n and \r into line breaks
// and \\ into a backslash, so shells can pass multi-line text as one
// argument.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		switch s[i+1] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte(s[i])
			continue
		}
		i++
	}
	return b.String()
}
