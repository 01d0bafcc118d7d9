// Package rest serves the HTTP surface: health probes and the
// tenant-scoped /api/v1 resources used by dashboards and the webapp.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// probeTimeout bounds all dependency pings of one probe.
const probeTimeout = 3 * time.Second

const (
	statusOK   = "ok"
	statusDown = "down"
)

// Check is a named dependency probed by /ready and /health.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	checks  []Check
	version string
}

// NewHealthHandler creates a HealthHandler. Checks run concurrently.
func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, version: version}
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]ComponentStatus `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

// ComponentStatus reports one dependency.
type ComponentStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live reports that the process is serving. It never touches dependencies.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 200 only when every dependency responds.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ok, _ := h.probe(r.Context())
	h.respond(w, ok, HealthResponse{})
}

// Health is Ready plus the build version and per-component detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ok, components := h.probe(r.Context())
	h.respond(w, ok, HealthResponse{Version: h.version, Components: components})
}

func (h *HealthHandler) respond(w http.ResponseWriter, ok bool, resp HealthResponse) {
	resp.Timestamp = time.Now()
	resp.Status = statusOK
	code := http.StatusOK
	if !ok {
		resp.Status = statusDown
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (h *HealthHandler) probe(ctx context.Context) (bool, map[string]ComponentStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		ok         = true
		components = make(map[string]ComponentStatus, len(h.checks))
		g          errgroup.Group
	)
	for _, c := range h.checks {
		g.Go(func() error {
			start := time.Now()
			err := c.Ping(ctx)

			st := ComponentStatus{Status: statusOK, Latency: time.Since(start).Round(time.Microsecond).String()}
			if err != nil {
				st = ComponentStatus{Status: statusDown, Error: err.Error()}
			}

			mu.Lock()
			defer mu.Unlock()
			components[c.Name] = st
			ok = ok && err == nil
			return nil
		})
	}
	_ = g.Wait()
	return ok, components
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
