// Package httpkit provides routing helpers over the platform http package
// modules use these so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"
	"strings"

	phttp "parliametrics/internal/platform/net/http"
)

type (
	// Router is a re-export of the platform router seam
	Router = phttp.Router

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Response is the return-style response type
	Response = phttp.Response
)

// Get mounts a body-less handler whose result is wrapped in the standard envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// Call adapts a handler that returns a value or an error
// a returned Response passes through untouched
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) phttp.Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(phttp.Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// MountVersion scopes mount under /api/<version> with mw applied to every route in it
func MountVersion(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.Trim(version, "/ "), func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
