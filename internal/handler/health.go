package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger probes storage reachability. *sqlite.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// healthResponse reports process liveness plus a storage probe.
type healthResponse struct {
	Status      string  `json:"status"`
	Timestamp   string  `json:"timestamp"`
	Uptime      float64 `json:"uptime"`
	Environment string  `json:"environment"`
	Database    string  `json:"database"`
}

// HealthHandler serves GET /health.
//
// A failed storage probe degrades the response to 503 — it never crashes
// the process. Load balancers and uptime monitors key off the status code.
type HealthHandler struct {
	db          Pinger
	environment string
	startedAt   time.Time
}

// NewHealthHandler creates a HealthHandler. startedAt is captured here so
// uptime reflects process start, not first request.
func NewHealthHandler(db Pinger, environment string) *HealthHandler {
	return &HealthHandler{
		db:          db,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// HandleHealth responds 200/"ok" when storage answers a ping within two
// seconds, 503/"degraded" otherwise.
//
// HTTP: GET /health
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Uptime:      time.Since(h.startedAt).Seconds(),
		Environment: h.environment,
		Database:    "ok",
	}

	status := http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "error"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
