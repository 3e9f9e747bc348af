package parliament

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	perr "parliametrics/internal/platform/errors"
	"parliametrics/internal/services/seed/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeNetwork = "network"
	outcomeStatus  = "status"
	outcomeDecode  = "decode"
)

var errTooLarge = errors.New("response too large")

var (
	// parliament requests partitioned by operation and outcome
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parliament_client_requests_total",
			Help: "Total number of parliament API requests issued",
		},
		[]string{"op", "outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parliament_client_request_duration_seconds",
			Help:    "Parliament API request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func observe(op, outcome string, lat time.Duration) {
	requestsTotal.WithLabelValues(op, outcome).Inc()
	requestDuration.WithLabelValues(op).Observe(lat.Seconds())
}

// StatusError wraps a non 200 response
type StatusError struct {
	Op     string
	Status int
	Body   string
}

// Error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d %s", e.Op, e.Status, http.StatusText(e.Status))
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// Code maps to the project error codes
func (e *StatusError) Code() perr.ErrorCode {
	switch {
	case e.Status == http.StatusNotFound:
		return perr.ErrorCodeNotFound
	case e.Status == http.StatusTooManyRequests:
		return perr.ErrorCodeTooManyRequests
	case e.Status >= 500:
		return perr.ErrorCodeUnavailable
	default:
		return perr.ErrorCodeUnknown
	}
}

func transient(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sortSittings orders by date then id
func sortSittings(s []domain.Sitting) {
	slices.SortStableFunc(s, func(a, b domain.Sitting) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
