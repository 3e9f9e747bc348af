package middleware

import (
	"net/http"
	"time"

	"parliametrics/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures the zerolog access log
type AccessLogOptions struct {
	// Slow marks requests taking >= Slow as warn level, zero means 500ms
	Slow time.Duration
}

// AccessLog logs method, route, status, elapsed and bytes written
// through the request scoped logger
func AccessLog(opt AccessLogOptions) func(http.Handler) http.Handler {
	if opt.Slow <= 0 {
		opt.Slow = 500 * time.Millisecond
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			log := logger.C(r.Context())
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case elapsed >= opt.Slow:
				evt = log.Warn()
			}
			evt.Int("status", status).
				Dur("elapsed", elapsed).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routeOf(r)).
				Int("bytes", ww.BytesWritten()).
				Msg("request done")
		})
	}
}
