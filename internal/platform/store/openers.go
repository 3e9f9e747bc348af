package store

import (
	"context"
	"fmt"
	"time"

	"parliametrics/internal/platform/logger"
	"parliametrics/internal/platform/store/pg"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	backoffStart          = 150 * time.Millisecond
	backoffCeiling        = 2 * time.Second
)

// openPG opens pg, waits for it to answer and wraps it with our sql adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	p, err := pg.Open(ctx, pg.Config{
		URL:            cfg.PG.URL,
		MaxConns:       cfg.PG.MaxConns,
		SlowMs:         cfg.PG.SlowQueryMs,
		AppName:        cfg.AppName,
		ConnectTimeout: pingTimeout(cfg.PG),
	}, pg.Tracer(s.Log, cfg.PG.LogSQL), nil)
	if err != nil {
		return nil, err
	}

	a := newPGAdapter(p)
	if err := waitReady(ctx, s.Log, a, cfg.PG); err != nil {
		p.Close()
		return nil, err
	}
	return a, nil
}

func pingTimeout(c PGConfig) time.Duration {
	if c.PingTimeout > 0 {
		return c.PingTimeout
	}
	return defaultPingTimeout
}

// waitReady pings with capped exponential backoff until the database answers
func waitReady(ctx context.Context, log logger.Logger, p Pinger, c PGConfig) error {
	attempts := c.ConnectRetries
	if attempts <= 0 {
		attempts = defaultConnectRetries
	}
	timeout := pingTimeout(c)

	var lastErr error
	backoff := backoffStart
	for i := 1; i <= attempts; i++ {
		toCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = p.Ping(toCtx)
		cancel()
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i == attempts {
			break
		}
		log.Warn().Err(lastErr).Int("attempt", i).Dur("backoff", backoff).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}
