package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops invalid UTF-8 plus C0 controls other than \n \r \t, DEL and
// C1 controls, so archive text is safe to print to a terminal
// s is returned unchanged when nothing needs dropping
func Sanitize(s string) string {
	if s == "" || clean(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r == utf8.RuneError && size == 1 {
			continue
		}
		if dropRune(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func clean(s string) bool {
	if !utf8.ValidString(s) {
		return false
	}
	for _, r := range s {
		if dropRune(r) {
			return false
		}
	}
	return true
}

func dropRune(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return false
	case r < 0x20, r == 0x7f:
		return true
	case r >= 0x80 && r <= 0x9f:
		return true
	}
	return false
}
