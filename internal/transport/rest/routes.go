package rest

import (
	"net/http"

	"github.com/ntotao/baby-tracker/internal/transport/middleware"
)

// Routes mounts the health probes and the /api/v1 resources on a new mux.
// protect wraps every /api/v1 route; it must authenticate the tenant.
func Routes(health *HealthHandler, api *APIHandler, protect middleware.Middleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("GET /api/v1/status", protect(http.HandlerFunc(api.Status)))
	mux.Handle("POST /api/v1/events", protect(http.HandlerFunc(api.AppendEvent)))
	mux.Handle("GET /api/v1/calendar", protect(http.HandlerFunc(api.Calendar)))
	mux.Handle("GET /api/v1/webapp/data", protect(http.HandlerFunc(api.WebAppData)))

	return mux
}
