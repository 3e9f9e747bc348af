package http

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MountMetrics exposes the default prometheus registry at path when enabled
func MountMetrics(r Router, path string, enabled bool) {
	if !enabled {
		return
	}
	r.Handle(path, promhttp.Handler())
}
