package domain

import (
	"net/url"
	"strings"
)

// Param is one query string pair
type Param struct {
	Key   string
	Value string
}

// Params is an ordered query parameter list
// url.Values sorts keys on Encode, Params keeps insertion order
type Params []Param

// Add appends a pair and returns the extended list
func (p Params) Add(key, value string) Params { return append(p, Param{Key: key, Value: value}) }

// Get returns the first value for key
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// All returns every value for key in order
func (p Params) All(key string) []string {
	var out []string
	for _, kv := range p {
		if kv.Key == key {
			out = append(out, kv.Value)
		}
	}
	return out
}

// Has reports whether key appears at least once
func (p Params) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Encode renders the list as a query string in insertion order
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Values converts to url.Values, losing cross-key order
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, kv := range p {
		v.Add(kv.Key, kv.Value)
	}
	return v
}
