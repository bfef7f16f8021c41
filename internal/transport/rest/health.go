package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/zhdict/internal/lexicon"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// engineState reports the lifecycle of the dictionary engine.
type engineState interface {
	State() lexicon.State
	Current() (*lexicon.Engine, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	gate    engineState
	db      dbPinger // nil when the database is disabled
	version string
}

// NewHealthHandler creates a HealthHandler. db may be nil.
func NewHealthHandler(gate engineState, db dbPinger, version string) *HealthHandler {
	return &HealthHandler{gate: gate, db: db, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Entries int    `json:"entries,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once the engine is built and the
// database (if any) answers, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if _, err := h.gate.Current(); err != nil {
		status = "down"
	} else if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			status = "down"
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health is the full health check with per-component status and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if e, err := h.gate.Current(); err == nil {
		components["dictionary"] = CompStatus{Status: "ok", Entries: e.Stats().Entries}
	} else {
		components["dictionary"] = CompStatus{Status: h.gate.State().String()}
		overallStatus = "down"
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		start := time.Now()
		err := h.db.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components["database"] = CompStatus{Status: "down"}
			overallStatus = "down"
		} else {
			components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
		}
	}

	status := http.StatusOK
	if overallStatus != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
