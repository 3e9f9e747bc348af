// Package module wires meta endpoints into the API
package module

import (
	"context"
	"errors"
	"time"

	modkit "parliametrics/internal/modkit"
	"parliametrics/internal/modkit/httpkit"
	"parliametrics/internal/modkit/repokit"
	"parliametrics/internal/platform/store"

	metahttp "parliametrics/internal/services/api/meta/http"
)

// ServiceName is reported by the health and service endpoints
const ServiceName = "parliametrics-api"

// errNoSchema is reported when the database answers but was never migrated
var errNoSchema = errors.New("speeches table missing, run with CORE_API_MIGRATE=true")

// Module serves /meta
type Module struct {
	b modkit.Built
	d metahttp.Deps
}

// New constructs a meta module, /ready checks the database when deps.PG is set
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	return &Module{
		b: modkit.Build([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...),
		d: metahttp.Deps{
			ServiceName:  ServiceName,
			StartedAt:    time.Now(),
			Checkers:     readyCheckers(deps.PG),
			ReadyTimeout: deps.Cfg.MayDuration("READY_TIMEOUT", 2*time.Second),
		},
	}
}

func readyCheckers(db repokit.TxRunner) map[string]metahttp.Checker {
	out := map[string]metahttp.Checker{}
	if db == nil {
		return out
	}
	if p, ok := db.(store.Pinger); ok {
		out["pg"] = p.Ping
	}
	out["schema"] = func(ctx context.Context) error {
		var present bool
		if err := db.QueryRow(ctx, `select to_regclass('speeches') is not null`).Scan(&present); err != nil {
			return err
		}
		if !present {
			return errNoSchema
		}
		return nil
	}
	return out
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.d) })
}

func (m *Module) Name() string { return m.b.Name }

// Ports is nil, nothing depends on meta
func (m *Module) Ports() any { return nil }
