// Package config reads namespaced settings from the environment
// Must* panics on a missing or bad value, May* logs and falls back
package config

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"parliametrics/internal/platform/config/raw"
	"parliametrics/internal/platform/logger"
)

// Conf is a namespaced view over environment variables (e.g. "CORE_API_")
type Conf struct{ r raw.Conf }

// New creates a root Conf (no prefix)
func New() Conf { return Conf{r: raw.New()} }

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("BROWSE_")
func (c Conf) Prefix(p string) Conf { return Conf{r: c.r.Prefix(p)} }

func (c Conf) key(k string) string { return c.r.Key(k) }

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	v, ok := c.r.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required env")
	}
	return v
}

// may parses key with parse, falling back to def when unset or invalid
func may[T any](c Conf, key string, def T, kind string, parse func(string) (T, bool)) T {
	s, ok := c.r.Lookup(key)
	if !ok {
		return def
	}
	if v, ok := parse(s); ok {
		return v
	}
	logger.Get().Warn().
		Str("key", c.key(key)).
		Str("value", s).
		Interface("default", def).
		Msgf("invalid %s; using default", kind)
	return def
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string { return c.r.Get(key, def) }

// MayInt returns the value or def if missing, empty or not an int
func (c Conf) MayInt(key string, def int) int {
	return may(c, key, def, "int", func(s string) (int, bool) {
		v, err := strconv.Atoi(s)
		return v, err == nil
	})
}

// MayBool returns the value or def if missing, empty or not a bool
func (c Conf) MayBool(key string, def bool) bool {
	return may(c, key, def, "bool", func(s string) (bool, bool) {
		v, err := strconv.ParseBool(s)
		return v, err == nil
	})
}

// MayDuration returns the value or def if missing, empty or not a duration like 250ms or 2s
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, "duration", func(s string) (time.Duration, bool) {
		v, err := time.ParseDuration(s)
		return v, err == nil && v >= 0
	})
}

// MayURL returns an absolute http(s) URL without trailing slash, or def
func (c Conf) MayURL(key, def string) string {
	return may(c, key, def, "url", func(s string) (string, bool) {
		u, err := url.Parse(s)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", false
		}
		return strings.TrimRight(s, "/"), true
	})
}

// MayCSV returns the non empty comma separated items, or def when there are none
func (c Conf) MayCSV(key string, def []string) []string {
	return may(c, key, def, "list", func(s string) ([]string, bool) {
		var out []string
		for _, p := range strings.Split(s, ",") {
			if v := strings.TrimSpace(p); v != "" {
				out = append(out, v)
			}
		}
		return out, len(out) > 0
	})
}

// MayDate returns the value parsed with layout, or def when missing or malformed
func (c Conf) MayDate(key, layout string, def time.Time) time.Time {
	return may(c, key, def, "date", func(s string) (time.Time, bool) {
		v, err := time.Parse(layout, strings.TrimSpace(s))
		return v, err == nil
	})
}
