// Package version reports what build is running
package version

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X parliametrics/internal/core/version.version=v0.3.0 -X ...commit=abcd -X ...date=2025-01-31"
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is served by /meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var (
	vcsOnce sync.Once
	vcs     BuildInfo
)

// vcsInfo reads the revision the go toolchain stamped into the binary
func vcsInfo() BuildInfo {
	vcsOnce.Do(func() {
		bi, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				vcs.Commit = s.Value
			case "vcs.time":
				vcs.Date = s.Value
			case "vcs.modified":
				vcs.Dirty = s.Value == "true"
			}
		}
	})
	return vcs
}

// Info prefers ldflags values and falls back to the stamped vcs settings
func Info() BuildInfo {
	v := vcsInfo()
	out := BuildInfo{Service: "parliametrics-api", Version: version, Commit: commit, Date: date, Dirty: v.Dirty}
	if out.Commit == "" {
		out.Commit = v.Commit
	}
	if out.Date == "" {
		out.Date = v.Date
	}
	if len(out.Commit) > 12 {
		out.Commit = out.Commit[:12]
	}
	return out
}

// String is a one line banner, e.g. "v0.3.0 (1a2b3c4d5e6f, 2025-01-31)"
func String() string {
	i := Info()
	s := i.Version
	if i.Commit != "" {
		s += " (" + i.Commit
		if i.Date != "" {
			s += ", " + i.Date
		}
		s += ")"
	}
	if i.Dirty {
		s += " dirty"
	}
	return s
}
