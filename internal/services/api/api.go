// Package api provides the HTTP API for the speech archive
package api

import (
	"parliametrics/internal/platform/config"
	phttp "parliametrics/internal/platform/net/http"
	"parliametrics/internal/platform/net/middleware"
	"parliametrics/internal/platform/store"

	"parliametrics/internal/modkit"
	"parliametrics/internal/modkit/httpkit"
	"parliametrics/internal/modkit/swaggerkit"

	metamod "parliametrics/internal/services/api/meta/module"
	speechesmod "parliametrics/internal/services/api/speeches/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
	CORSOrigins    []string
}

// Modules builds the API modules over shared deps
func Modules(deps modkit.Deps) []modkit.Module {
	mods := []modkit.Module{metamod.New(deps)}
	if deps.PG != nil {
		mods = append(mods, speechesmod.New(deps))
	}
	return mods
}

// Mount mounts the API service onto the given router
// it must run before anything else is routed on r
func Mount(r phttp.Router, opt Options) {
	r.Use(middleware.Heartbeat("/health"))

	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}
	mods := Modules(deps)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountDebug(r, "/debug", opt.EnableProfiler)
	phttp.MountMetrics(r, "/metrics", opt.EnableMetrics)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Metrics:     opt.EnableMetrics,
		Timeout:     opt.Config.MayDuration("REQUEST_TIMEOUT", 0),
		Slow:        opt.Config.MayDuration("SLOW_REQUEST", 0),
	})
	httpkit.MountVersion(r, "v1", stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
