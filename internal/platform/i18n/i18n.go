// Package i18n holds the bilingual UI label table
package i18n

import (
	"strings"
	"sync/atomic"

	"golang.org/x/text/language"
)

// Lang is a supported UI language
type Lang string

const (
	// BG is Bulgarian, the default
	BG Lang = "bg"
	// EN is English
	EN Lang = "en"
)

// Default is the language used when none is chosen
const Default = BG

// Key names one label
type Key string

var supported = []language.Tag{language.Bulgarian, language.English}

var matcher = language.NewMatcher(supported)

// ParseLang matches a free form tag such as "en-GB", "bg_BG" or "EN"
// ok is false when nothing matched with at least low confidence; lang is then Default
func ParseLang(s string) (Lang, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return Default, false
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Default, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default, false
	}
	if supported[idx] == language.English {
		return EN, true
	}
	return BG, true
}

// T returns the label for key in lang
// unknown keys and unknown languages fall back to the key itself
func T(key Key, lang Lang) string {
	row, ok := labels[key]
	if !ok {
		return string(key)
	}
	if s, ok := row[lang]; ok {
		return s
	}
	return string(key)
}

// Keys lists every label key in the table
func Keys() []Key {
	out := make([]Key, 0, len(labels))
	for k := range labels {
		out = append(out, k)
	}
	return out
}

// Locale is the shared current language
// zero value reads as Default
type Locale struct{ cur atomic.Value }

// Lang returns the current language
func (l *Locale) Lang() Lang {
	if v, ok := l.cur.Load().(Lang); ok {
		return v
	}
	return Default
}

// SetLang switches the current language; unsupported values are ignored
func (l *Locale) SetLang(lang Lang) bool {
	if lang != BG && lang != EN {
		return false
	}
	l.cur.Store(lang)
	return true
}

// T translates key in the current language
func (l *Locale) T(key Key) string { return T(key, l.Lang()) }
