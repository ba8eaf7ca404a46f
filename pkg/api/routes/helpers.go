package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/docstore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeStoreError maps store failures onto HTTP: missing documents are 404,
// everything else is 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, docstore.ErrDocumentNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	logger.Error("Store request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "store unavailable")
}
