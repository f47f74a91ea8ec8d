// Package v0 provides the REST handlers for sync-environment status access.
package v0

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/driftlock/syncenv/pkg/monitor"
	"github.com/driftlock/syncenv/pkg/versions"
)

// maxWaitTimeout caps the server-side readiness wait so a request cannot pin
// a handler goroutine indefinitely
const maxWaitTimeout = 5 * time.Minute

// CloudDriveResponse reports cloud-drive token availability
type CloudDriveResponse struct {
	Available bool `json:"available"`
}

// SyncEventResponse reports the current sync-engine phase
type SyncEventResponse struct {
	Event  string `json:"event"`
	Active bool   `json:"active"`
}

// WaitResponse reports the outcome of a readiness wait
type WaitResponse struct {
	Ready bool `json:"ready"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Routes defines the routes for the status API with dependency injection
type Routes struct {
	mon *monitor.Manager
}

// NewRoutes creates a new Routes instance over the provided monitor
func NewRoutes(mon *monitor.Manager) *Routes {
	return &Routes{mon: mon}
}

// Router creates a new router for the status API
func Router(mon *monitor.Manager) http.Handler {
	routes := NewRoutes(mon)

	r := chi.NewRouter()

	r.Get("/status", routes.getEnvironmentStatus)
	r.Get("/status/network", routes.getNetworkStatus)
	r.Get("/status/account", routes.getAccountStatus)
	r.Get("/status/syncEvent", routes.getSyncEvent)
	r.Get("/status/cloudDrive", routes.getCloudDriveStatus)
	r.Get("/status/wait", routes.waitUntilReady)

	return r
}

// getEnvironmentStatus handles GET /v0/status
func (rr *Routes) getEnvironmentStatus(w http.ResponseWriter, _ *http.Request) {
	rr.writeJSONResponse(w, rr.mon.EnvironmentStatus())
}

// getNetworkStatus handles GET /v0/status/network
func (rr *Routes) getNetworkStatus(w http.ResponseWriter, _ *http.Request) {
	rr.writeJSONResponse(w, rr.mon.CheckNetworkStatus())
}

// getAccountStatus handles GET /v0/status/account
func (rr *Routes) getAccountStatus(w http.ResponseWriter, _ *http.Request) {
	rr.writeJSONResponse(w, rr.mon.AccountStatus())
}

// getSyncEvent handles GET /v0/status/syncEvent
func (rr *Routes) getSyncEvent(w http.ResponseWriter, _ *http.Request) {
	event := rr.mon.SyncEvent()
	rr.writeJSONResponse(w, SyncEventResponse{
		Event:  string(event),
		Active: event.IsActive(),
	})
}

// getCloudDriveStatus handles GET /v0/status/cloudDrive
func (rr *Routes) getCloudDriveStatus(w http.ResponseWriter, _ *http.Request) {
	rr.writeJSONResponse(w, CloudDriveResponse{
		Available: rr.mon.IsCloudDriveAvailable(),
	})
}

// waitUntilReady handles GET /v0/status/wait?timeout=5s. Without a timeout
// the request returns the instant readiness check.
func (rr *Routes) waitUntilReady(w http.ResponseWriter, r *http.Request) {
	var timeout time.Duration
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			rr.writeErrorResponse(w, "timeout must be a non-negative duration", http.StatusBadRequest)
			return
		}
		timeout = min(parsed, maxWaitTimeout)
	}

	ready := rr.mon.WaitUntilSyncReadyWithTimeout(r.Context(), timeout)
	rr.writeJSONResponse(w, WaitResponse{Ready: ready})
}

// HealthRouter creates a router for health check endpoints
func HealthRouter(mon *monitor.Manager) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", healthHandler)
	r.Get("/readiness", readinessHandler(mon))
	r.Get("/version", versionHandler)

	return r
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// readinessHandler reports whether the monitor has active adapters
func readinessHandler(mon *monitor.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		if !mon.IsRunning() {
			errorResp := ErrorResponse{Error: "monitor not running"}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(errorResp)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	}
}

// versionHandler handles version information requests
func versionHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(versions.GetVersionInfo())
}

// writeJSONResponse writes a JSON response with the given data
func (*Routes) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(data)
}

// writeErrorResponse writes a standardized error response
func (*Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
