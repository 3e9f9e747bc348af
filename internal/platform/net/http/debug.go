package http

import (
	stdhttp "net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// MountDebug serves the runtime profiles under prefix/pprof when enabled
// responses are never cached
func MountDebug(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	profiles := stdhttp.StripPrefix(prefix, chimw.Profiler())
	r.Route(prefix, func(d Router) {
		d.Use(chimw.NoCache)
		d.Handle("/*", profiles)
	})
}
