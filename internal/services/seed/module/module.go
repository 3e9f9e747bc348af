// Package module wires the parliament client, the seed repo and the seed
// service into a module
package module

import (
	"parliametrics/internal/adapters/parliament"
	"parliametrics/internal/modkit"
	"parliametrics/internal/modkit/httpkit"
	"parliametrics/internal/services/seed/domain"
	"parliametrics/internal/services/seed/repo"
	"parliametrics/internal/services/seed/service"
)

// Module defines the seed module
type Module struct {
	opts  Options
	ports Ports
}

// New constructs the seed module against the parliament API
// non zero overrides win over config
func New(deps modkit.Deps, overrides Options) *Module {
	opts := merge(FromConfig(deps.Cfg), overrides)
	client := parliament.NewClient(parliament.Options{
		BaseURL:    opts.BaseURL,
		UserAgent:  opts.UserAgent,
		Timeout:    opts.Timeout,
		MaxRetries: opts.MaxRetries,
		RetryBase:  opts.RetryBase,
	})
	return NewWithSource(deps, opts, client)
}

// NewWithSource wires the seed service over any SourcePort
func NewWithSource(deps modkit.Deps, opts Options, src domain.SourcePort) *Module {
	svc := service.New(deps.PG, repo.NewPG(), src, service.Config{
		Delay:         opts.Delay,
		SpeechesSince: opts.SpeechesSince,
	})
	return &Module{opts: opts, ports: Ports{Runner: svc, Source: src}}
}

func merge(base, o Options) Options {
	if o.BaseURL != "" {
		base.BaseURL = o.BaseURL
	}
	if o.UserAgent != "" {
		base.UserAgent = o.UserAgent
	}
	if o.Timeout > 0 {
		base.Timeout = o.Timeout
	}
	if o.MaxRetries != 0 {
		base.MaxRetries = o.MaxRetries
	}
	if o.RetryBase > 0 {
		base.RetryBase = o.RetryBase
	}
	if o.Delay > 0 {
		base.Delay = o.Delay
	}
	if !o.MembersFrom.IsZero() {
		base.MembersFrom = o.MembersFrom
	}
	if !o.SpeechesSince.IsZero() {
		base.SpeechesSince = o.SpeechesSince
	}
	return base
}

// Name returns the module name
func (m *Module) Name() string { return "seed" }

// Ports returns the module ports (Runner, Source)
func (m *Module) Ports() any { return m.ports }

// Options returns the effective options after config and overrides
func (m *Module) Options() Options { return m.opts }

// Prefix returns the module route prefix (none for seed)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes for seed (it's a batch job)
func (m *Module) MountRoutes(_ httpkit.Router) {}
