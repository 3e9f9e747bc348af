// Package pg provides a Postgres client using pgxpool with optional query tracing
package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures pgxpool for pg
type Config struct {
	URL      string
	MaxConns int32
	// SlowMs marks statements at or over it as slow, zero disables
	SlowMs int
	// AppName shows up in pg_stat_activity
	AppName string
	// ConnectTimeout bounds a single dial, zero keeps the DSN value
	ConnectTimeout time.Duration
}

// PG is a postgres client over a pgx pool
type PG struct {
	Pool *pgxpool.Pool
}

var newPool = pgxpool.NewWithConfig

// Open creates a new PG client
// a non nil tracer is attached to every pooled connection
func Open(ctx context.Context, cfg Config, tracer QueryTracer, poolCfgMut func(*pgxpool.Config)) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pcfg.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if tracer != nil {
		slow := time.Duration(-1)
		if cfg.SlowMs > 0 {
			slow = time.Duration(cfg.SlowMs) * time.Millisecond
		}
		pcfg.ConnConfig.Tracer = &connTracer{t: tracer, slow: slow}
	}
	if poolCfgMut != nil {
		poolCfgMut(pcfg)
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &PG{Pool: pool}, nil
}

// Close closes the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
