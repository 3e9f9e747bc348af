// Package normalize folds display text into a comparable key for search
// Pipeline order
// 1 sanitize controls and invalid UTF-8
// 2 Unicode NFD so accents split off their base letters
// 3 Case folding
// 4 Remove combining marks and format chars
// 5 Width fold fullwidth to ASCII
// 6 Unicode NFC
// 7 Collapse whitespace and punctuation runs to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold returns the search key of s
// "Иван  Петров-Йорданов" and "иван петров йорданов" fold to the same key
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = strings.ToLower(s)
	}
	return collapse(ns)
}

// Title trims s and title cases every word the way Bulgarian names are written
// "  ИВАН ГЕОРГИЕВ-ДИМОВ" becomes "Иван Георгиев-Димов"
func Title(s string) string {
	return cases.Title(language.Bulgarian).String(strings.TrimSpace(s))
}

// Contains reports whether the folded haystack contains the folded needle
// an empty needle matches everything
func Contains(haystack, needle string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	return strings.Contains(Fold(haystack), n)
}

// collapse turns whitespace and punctuation runs into one ASCII space
func collapse(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	gap := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if gap && b.Len() > 0 {
				b.WriteByte(' ')
			}
			gap = false
			b.WriteRune(r)
			continue
		}
		gap = true
	}
	return b.String()
}
