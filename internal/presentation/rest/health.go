package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ServiceName is reported by the health endpoints.
const ServiceName = "dropout-predictor"

// ModelStatus reports whether the classifier artifact is loaded.
type ModelStatus interface {
	Available() bool
}

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	model     ModelStatus
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(model ModelStatus, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		model:     model,
		logger:    logger,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks  map[string]string `json:"checks"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: ServiceName,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}, h.logger)
}

// Readyz handles readiness probe requests. The service keeps answering form
// requests without a model, so a missing model reports degraded with 503.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:  "ready",
		Service: ServiceName,
		Checks:  map[string]string{"model": "ok"},
	}
	status := http.StatusOK

	if !h.model.Available() {
		resp.Status = "degraded"
		resp.Checks["model"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp, h.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode health response", "error", err)
	}
}
