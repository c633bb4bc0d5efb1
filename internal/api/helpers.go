package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"chatpane/internal/auth"
)

// writeJSON encodes a response payload, logging encode failures.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: Failed to encode response: %v", err)
	}
}

// GetViewerFromContext extracts the viewer's mailbox address from context
// and writes a 401 when it is missing. Returns (viewer, true) on success.
// Shared across handlers for consistent error handling.
func GetViewerFromContext(ctx context.Context, w http.ResponseWriter) (string, bool) {
	viewer, ok := auth.GetViewerFromContext(ctx)
	if !ok {
		log.Println("API: No viewer address in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return viewer, true
}
