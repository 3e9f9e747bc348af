package modkit

import (
	"net/http"

	phttp "parliametrics/internal/platform/net/http"
	str "parliametrics/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Register runs after the module's own routes, nil means none
	Register func(phttp.Router)
}

// Build applies defaults first, then opts, and returns a plain struct
func Build(defaults []Option, opts ...Option) Built {
	var c buildCfg
	for _, o := range defaults {
		o(&c)
	}
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:     str.MustString(c.name, "module name"),
		Prefix:   str.MustPrefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Register: c.register,
	}
}

// Mount routes own under Prefix with the module middlewares applied
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	r.Route(b.Prefix, func(rr phttp.Router) {
		rr.Use(b.Mw...)
		own(rr)
		if b.Register != nil {
			b.Register(rr)
		}
	})
}
