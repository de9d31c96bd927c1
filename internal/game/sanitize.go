package game

import (
	"strings"
	"unicode"
)

// sanitizeInput strips the control and format runes a client can smuggle into
// a line (bells, backspaces, bidi overrides) and flattens exotic whitespace
// to plain spaces before the line reaches the dispatcher.
func sanitizeInput(s string) string {
	return strings.Map(cleanRune, s)
}

func cleanRune(r rune) rune {
	switch {
	case r == '\r':
		return -1
	case r == ' ':
		return r
	case unicode.IsSpace(r):
		return ' '
	case r < 0x20 || r == 0x7f:
		return -1
	case unicode.IsControl(r), unicode.Is(unicode.Cf, r):
		return -1
	case !unicode.IsPrint(r):
		return -1
	default:
		return r
	}
}
