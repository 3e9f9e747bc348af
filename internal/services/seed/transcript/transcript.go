// Package transcript splits a stenographic record into speeches
package transcript

import (
	"regexp"
	"strings"

	"parliametrics/internal/core/normalize"
)

// Segment is one speaker turn of a record
// Annotation keeps the parenthesised groups after the label, parens included
type Segment struct {
	Speaker    string
	Annotation string
	Content    string
}

var (
	// an upper case Cyrillic label at line start, optional annotations, then a colon
	headerRe = regexp.MustCompile(`(?m)^([А-Я][А-Я \t]*?)[ \t]*((?:\([^()\n]*\)[ \t]*)*):`)
	brRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	nlRe     = regexp.MustCompile(`\n+`)
	partyRe  = regexp.MustCompile(`^\(([^(),]+)`)
)

// labels that open a line like a speaker but name a procedure
var nonSpeakerPrefixes = []string{
	"реплика", "реплики", "декларира", "декларация",
	"първо гласуване на", "второ гласуване на", "трето гласуване на",
	"запазване на", "европа в света", "изказвания", "изказване",
	"гласуване", "отговори", "въпроси", "физическите лица",
}

// bare one word labels that still are speakers
var roleWords = map[string]bool{"председател": true, "министър": true, "докладчик": true}

// Split returns the speaker turns of body in order
// text before the first label is dropped
func Split(body string) []Segment {
	locs := headerRe.FindAllStringSubmatchIndex(body, -1)
	out := make([]Segment, 0, len(locs))
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		seg := Segment{
			Speaker: strings.TrimSpace(body[loc[2]:loc[3]]),
			Content: Clean(body[loc[1]:end]),
		}
		if loc[4] >= 0 {
			seg.Annotation = strings.TrimSpace(body[loc[4]:loc[5]])
		}
		out = append(out, seg)
	}
	return out
}

// Clean turns <br> into newlines, squeezes blank lines and trims
func Clean(s string) string {
	s = brRe.ReplaceAllString(s, "\n")
	s = nlRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// IsSpeaker reports whether a label names a person or a chamber role
func IsSpeaker(label string) bool {
	key := normalize.Fold(label)
	if key == "" {
		return false
	}
	if !strings.Contains(key, " ") && !roleWords[key] {
		return false
	}
	for _, p := range nonSpeakerPrefixes {
		if strings.HasPrefix(key, normalize.Fold(p)) {
			return false
		}
	}
	return true
}

// FromTribune is false only when the annotation says the speech was from the seat
func FromTribune(annotation string) bool {
	return !strings.Contains(strings.ToLower(annotation), "от място")
}

// PartyLabel returns the first annotation field, usually a group name or abbreviation
func PartyLabel(annotation string) string {
	m := partyRe.FindStringSubmatch(annotation)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
