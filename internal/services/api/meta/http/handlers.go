// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"parliametrics/internal/core/version"
	"parliametrics/internal/modkit/httpkit"
	phttp "parliametrics/internal/platform/net/http"
)

// Checker reports whether one dependency answers
type Checker func(ctx context.Context) error

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	// Checkers run on /ready in name order, none configured reports degraded
	Checkers     map[string]Checker
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Now     string `json:"now"`
}

// ReadyCheck is the outcome of one checker, status is ok or fail
type ReadyCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Millis int64  `json:"ms"`
}

// ReadyResponse is ok, degraded or fail over all checks
type ReadyResponse struct {
	Status string       `json:"status"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"`
}

// ServiceResponse is the service name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Now:     stamp(h.now()),
	}, nil
}

// ready answers 503 when any checker fails so load balancers drain the instance
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps.Checkers))
	for n := range h.deps.Checkers {
		names = append(names, n)
	}
	sort.Strings(names)

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, 0, len(names))}
	if len(names) == 0 {
		out.Status = "degraded"
	}
	for _, n := range names {
		c := runChecker(ctx, n, h.deps.Checkers[n])
		if c.Status == "fail" {
			out.Status = "fail"
		}
		out.Checks = append(out.Checks, c)
	}
	out.Now = stamp(h.now())

	if out.Status == "fail" {
		return phttp.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

func runChecker(ctx context.Context, name string, p Checker) ReadyCheck {
	start := time.Now()
	err := p(ctx)
	c := ReadyCheck{Name: name, Status: "ok", Millis: time.Since(start).Milliseconds()}
	if err != nil {
		c.Status, c.Error = "fail", err.Error()
	}
	return c
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(h.now().Sub(h.deps.StartedAt) / time.Second),
	}, nil
}
