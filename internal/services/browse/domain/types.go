// Package domain holds the archive browsing model shared by the client, the
// browse services and the CLI
package domain

import "strings"

// Speech is a single archived speech as returned by the archive API
type Speech struct {
	ID                int64  `json:"speech_id"`
	Content           string `json:"speech_content"`
	Date              string `json:"datestamp"`
	FromTribune       bool   `json:"from_tribune"`
	SpeakerName       string `json:"speaker_name"`
	PartyAbbreviation string `json:"party_abbreviation"`
	PartyName         string `json:"party_name"`
}

// SpeakerOption is a selectable speaker in the filter catalog
type SpeakerOption struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	MiddleName *string `json:"middle_name"`
}

// DisplayName joins the name and the middle name when one is present
func (s SpeakerOption) DisplayName() string {
	if s.MiddleName == nil || strings.TrimSpace(*s.MiddleName) == "" {
		return s.Name
	}
	return s.Name + " " + strings.TrimSpace(*s.MiddleName)
}

// PartyOption is a selectable party in the filter catalog
type PartyOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Abbr string `json:"abbr"`
}

// FilterCatalog is the set of valid filter values the archive knows about
// Dates are ISO YYYY-MM-DD strings in ascending order
type FilterCatalog struct {
	Speakers           []SpeakerOption `json:"speakers"`
	Parties            []PartyOption   `json:"parties"`
	FromTribuneOptions []bool          `json:"from_tribune_options"`
	Dates              []string        `json:"dates"`
}

// FirstDate returns the earliest date in the catalog
func (c FilterCatalog) FirstDate() (string, bool) {
	if len(c.Dates) == 0 {
		return "", false
	}
	return c.Dates[0], true
}

// LastDate returns the latest date in the catalog
func (c FilterCatalog) LastDate() (string, bool) {
	if len(c.Dates) == 0 {
		return "", false
	}
	return c.Dates[len(c.Dates)-1], true
}

// Clone returns a deep copy so callers cannot mutate stored state
func (c FilterCatalog) Clone() FilterCatalog {
	out := FilterCatalog{
		Speakers:           make([]SpeakerOption, len(c.Speakers)),
		Parties:            append([]PartyOption(nil), c.Parties...),
		FromTribuneOptions: append([]bool(nil), c.FromTribuneOptions...),
		Dates:              append([]string(nil), c.Dates...),
	}
	for i, s := range c.Speakers {
		if s.MiddleName != nil {
			m := *s.MiddleName
			s.MiddleName = &m
		}
		out.Speakers[i] = s
	}
	return out
}

// Tribune is the tri-state location filter
// the zero value means no constraint
type Tribune uint8

const (
	// TribuneUnset applies no location constraint
	TribuneUnset Tribune = iota
	// TribuneYes keeps speeches delivered from the tribune
	TribuneYes
	// TribuneNo keeps speeches delivered from the seat
	TribuneNo
)

// TribuneOf maps a boolean to a set location
func TribuneOf(fromTribune bool) Tribune {
	if fromTribune {
		return TribuneYes
	}
	return TribuneNo
}

// ParseTribune accepts "", true/false, yes/no and tribune/seat
func ParseTribune(s string) (Tribune, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any", "all":
		return TribuneUnset, true
	case "true", "yes", "tribune", "1":
		return TribuneYes, true
	case "false", "no", "seat", "place", "0":
		return TribuneNo, true
	default:
		return TribuneUnset, false
	}
}

// IsSet reports whether a location constraint is active
func (t Tribune) IsSet() bool { return t == TribuneYes || t == TribuneNo }

// Bool returns the wire value and whether it should be sent at all
func (t Tribune) Bool() (v bool, ok bool) {
	switch t {
	case TribuneYes:
		return true, true
	case TribuneNo:
		return false, true
	default:
		return false, false
	}
}

// String renders the wire form, empty when unset
func (t Tribune) String() string {
	switch t {
	case TribuneYes:
		return "true"
	case TribuneNo:
		return "false"
	default:
		return ""
	}
}

// Selection is the user's current filter choice plus the page number
// Empty date strings mean no bound; Page starts at 1
type Selection struct {
	SpeakerIDs []int64
	PartyIDs   []int64
	Location   Tribune
	DateFrom   string
	DateTo     string
	Page       int
}

// Clone copies the id slices
func (s Selection) Clone() Selection {
	s.SpeakerIDs = append([]int64(nil), s.SpeakerIDs...)
	s.PartyIDs = append([]int64(nil), s.PartyIDs...)
	return s
}
