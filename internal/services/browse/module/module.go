// Package module wires the archive client and the browse services and exposes
// their ports
package module

import (
	"parliametrics/internal/adapters/archive"
	"parliametrics/internal/modkit"
	"parliametrics/internal/modkit/httpkit"
	"parliametrics/internal/services/browse/domain"
	"parliametrics/internal/services/browse/service"
)

// Module defines the browse module
type Module struct {
	deps  modkit.Deps
	opts  Options
	ports Ports
}

// New constructs the browse module against the archive API
// non zero overrides win over config
func New(deps modkit.Deps, overrides Options) *Module {
	opts := merge(FromConfig(deps.Cfg), overrides)
	client := archive.NewClient(archive.Options{
		BaseURL:   opts.APIURL,
		UserAgent: opts.UserAgent,
		Timeout:   opts.Timeout,
	})
	return NewWithArchive(deps, opts, client)
}

// NewWithArchive wires the services over any ArchivePort
func NewWithArchive(deps modkit.Deps, opts Options, arc domain.ArchivePort) *Module {
	q := service.NewQuery(arc)
	c := service.NewCatalog(arc, q)

	m := &Module{deps: deps, opts: opts}
	m.ports = Ports{
		Catalog: c,
		Query:   q,
		Archive: arc,
	}
	return m
}

func merge(base, o Options) Options {
	if o.APIURL != "" {
		base.APIURL = o.APIURL
	}
	if o.UserAgent != "" {
		base.UserAgent = o.UserAgent
	}
	if o.Timeout > 0 {
		base.Timeout = o.Timeout
	}
	if o.PageSize > 0 {
		base.PageSize = o.PageSize
	}
	if o.Lang != "" {
		base.Lang = o.Lang
	}
	if base.PageSize <= 0 {
		base.PageSize = service.DefaultPageSize
	}
	return base
}

// Name returns the module name
func (m *Module) Name() string { return "browse" }

// Ports returns the module ports (Catalog, Query, Archive)
func (m *Module) Ports() any { return m.ports }

// Options returns the effective options after config and overrides
func (m *Module) Options() Options { return m.opts }

// Prefix returns the module route prefix (none for browse)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes for browse (it's a client)
func (m *Module) MountRoutes(_ httpkit.Router) {}
