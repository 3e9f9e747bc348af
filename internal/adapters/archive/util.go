package archive

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK       = "ok"
	outcomeNetwork  = "network"
	outcomeStatus   = "status"
	outcomeDecode   = "decode"
	outcomeTooLarge = "too_large"
)

var errTooLarge = errors.New("response too large")

var (
	// archive requests partitioned by operation and outcome
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "archive_client_requests_total",
			Help: "Total number of archive API requests issued",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "archive_client_request_duration_seconds",
			Help:    "Archive API request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func observe(op, outcome string, lat time.Duration) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(lat.Seconds())
}

func statusErr(code int) error {
	if txt := http.StatusText(code); txt != "" {
		return fmt.Errorf("unexpected status %d %s", code, txt)
	}
	return fmt.Errorf("unexpected status %s", strconv.Itoa(code))
}

// tail keeps the last diagTail bytes of a body for diagnostics
func tail(b []byte) string {
	if len(b) > diagTail {
		b = b[len(b)-diagTail:]
	}
	return string(b)
}
