package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"parliametrics/internal/platform/net/middleware"
)

// StackOptions tunes the per API middleware stack
type StackOptions struct {
	// CORSOrigins lists allowed browser origins, empty allows any
	CORSOrigins []string
	// Metrics records prometheus request metrics
	Metrics bool
	// Timeout bounds a single request, zero means 30s
	Timeout time.Duration
	// Slow marks slower requests as warn in the access log
	Slow time.Duration
}

// CommonStack returns the baseline middleware slice mounted under /api/v1
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	stack := []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(middleware.AccessLogOptions{Slow: o.Slow}),
	}
	if o.Metrics {
		stack = append(stack, middleware.Metrics())
	}
	return append(stack,
		middleware.CORS(middleware.CORSOptions{
			AllowedOrigins: o.CORSOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
		}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	)
}
