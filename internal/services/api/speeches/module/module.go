// Package module wires speeches into the API using modkit
package module

import (
	"context"

	modkit "parliametrics/internal/modkit"
	"parliametrics/internal/modkit/httpkit"
	speecheshttp "parliametrics/internal/services/api/speeches/http"
	speechesrepo "parliametrics/internal/services/api/speeches/repo"
	speechessvc "parliametrics/internal/services/api/speeches/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b   modkit.Built
	svc speechessvc.Service
}

// New constructs a speeches module backed by deps.PG
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		b:   modkit.Build([]modkit.Option{modkit.WithName("speeches"), modkit.WithPrefix("/speeches")}, opts...),
		svc: speechessvc.New(deps.PG, speechesrepo.NewPG()),
	}
}

// Migrate applies the embedded archive schema
func Migrate(ctx context.Context, deps modkit.Deps) error {
	return speechesrepo.Migrate(ctx, deps.PG)
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { speecheshttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return m.b.Name }

// Ports exposes the speeches service to other modules
func (m *Module) Ports() any { return Ports{Service: m.svc} }
