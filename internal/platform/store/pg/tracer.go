package pg

import (
	"context"
	"strconv"
	"strings"
	"time"

	"parliametrics/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "pg_query_duration_seconds",
	Help:    "Postgres statement latency",
	Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
}, []string{"failed"})

// Tracer records statement latency and logs slow statements
// with logSQL every statement is logged, independent of the root level
func Tracer(root logger.Logger, logSQL bool) QueryTracer {
	ll := root.With().Str("component", "pg").Logger()
	if logSQL {
		ll = ll.Level(zerolog.DebugLevel)
	}
	return &zlTracer{log: ll, all: logSQL}
}

type zlTracer struct {
	log logger.Logger
	all bool
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	queryDuration.WithLabelValues(strconv.FormatBool(ev.Err != nil)).Observe(float64(ev.ElapsedUS) / 1e6)

	if !ev.Slow && !z.all {
		return
	}
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg("pg query")
}

// compact folds whitespace runs so multi line SQL stays on one log line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type traceKey struct{}

type traceStart struct {
	at   time.Time
	sql  string
	args []any
}

// connTracer bridges pgx.QueryTracer to QueryTracer
// a negative slow threshold marks nothing slow
type connTracer struct {
	t    QueryTracer
	slow time.Duration
}

var _ pgx.QueryTracer = (*connTracer)(nil)

func (c *connTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceKey{}, traceStart{at: time.Now(), sql: d.SQL, args: d.Args})
}

func (c *connTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	st, ok := ctx.Value(traceKey{}).(traceStart)
	if !ok {
		return
	}
	elapsed := time.Since(st.at)
	c.t.OnQuery(ctx, QueryEvent{
		SQL:       st.sql,
		Args:      st.args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       d.Err,
		Slow:      c.slow >= 0 && elapsed >= c.slow,
	})
}
