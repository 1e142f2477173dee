package format

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sanitize neutralizes terminal control sequences in user text. ESC, the other C0/C1
// controls and DEL are shown as visible \xNN (or \uNNNN) escapes, so stored text can never move
// the cursor, recolor the screen or set the window title. Bytes that are not valid UTF-8 are
// escaped the same way.
func Sanitize(s string) string {
	if utf8.ValidString(s) && !strings.ContainsFunc(s, isUnsafeRune) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, `\x%02x`, s[i])
		case !isUnsafeRune(r):
			b.WriteString(s[i : i+size])
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			fmt.Fprintf(&b, `\u%04x`, r)
		}
		i += size
	}
	return b.String()
}

func isUnsafeRune(r rune) bool {
	if unicode.IsControl(r) {
		return true
	}
	// Bidi overrides and isolates can visually reorder the rest of the line.
	switch r {
	case '\u202a', '\u202b', '\u202c', '\u202d', '\u202e', '\u2066', '\u2067', '\u2068', '\u2069':
		return true
	}
	return false
}
