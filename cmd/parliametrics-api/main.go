// Command parliametrics-api serves the speech archive over HTTP
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"parliametrics/internal/modkit"
	"parliametrics/internal/platform/config"
	"parliametrics/internal/platform/logger"
	phttp "parliametrics/internal/platform/net/http"
	"parliametrics/internal/platform/store"

	"parliametrics/internal/services/api"
	speechesmod "parliametrics/internal/services/api/speeches/module"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Config{
		PG: store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if apiCfg.MayBool("MIGRATE", false) {
		if err := speechesmod.Migrate(ctx, modkit.Deps{Cfg: apiCfg, PG: st.PG}); err != nil {
			l.Panic().Err(err).Msg("archive schema migration failed")
		}
		l.Info().Msg("archive schema up to date")
	}

	// reads CORE_API_API_PORT
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		EnableMetrics:  apiCfg.MayBool("METRICS", true),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
	})

	// Run drains in-flight requests for CORE_API_SHUTDOWN_TIMEOUT once ctx ends
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
	l.Info().Msg("shut down")
}
