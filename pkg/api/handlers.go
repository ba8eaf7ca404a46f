package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/health"
)

// writeJSON serializes v with the given status code. Encoding failures are
// logged; by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// welcomeResponse is served on the root and /api landing endpoints.
type welcomeResponse struct {
	Message     string   `json:"message"`
	Version     string   `json:"version"`
	Environment string   `json:"environment"`
	Endpoints   []string `json:"endpoints"`
}

// welcomeHandler serves the landing document listing the mounted route
// prefixes.
func welcomeHandler(version, environment string, prefixes []string) http.HandlerFunc {
	resp := welcomeResponse{
		Message:     "QuestForge API",
		Version:     version,
		Environment: environment,
		Endpoints:   prefixes,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// healthProbeTimeout bounds the request-time store probe so a slow store
// turns into a 500, not a hung request.
const healthProbeTimeout = 3 * time.Second

// healthHandler answers request-time health probes. Distinct from the
// startup gate: this one runs per request, with a single bounded store
// probe and no retries.
type healthHandler struct {
	store     docstore.Store
	startTime time.Time
}

func newHealthHandler(store docstore.Store) *healthHandler {
	return &healthHandler{
		store:     store,
		startTime: time.Now(),
	}
}

// Health reports 200 with uptime when the store answers a read within the
// probe timeout, 500 with the error otherwise.
func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
	defer cancel()

	if err := h.probe(ctx); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"uptime":    time.Since(h.startTime).Round(time.Second).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// probe reads the health check document. A missing document still proves
// the store is reachable, so it counts as healthy.
func (h *healthHandler) probe(ctx context.Context) error {
	_, err := h.store.Get(ctx, health.StatusCollection, health.HealthCheckDoc)
	if err != nil && !errors.Is(err, docstore.ErrDocumentNotFound) {
		return err
	}
	return nil
}
