package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"chatpane/internal/conversation"
)

// TranscriptHandler serves the assembled transcript view for a
// conversation.
type TranscriptHandler struct {
	service conversation.TranscriptService
}

func NewTranscriptHandler(service conversation.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

// errorResponse is the non-blocking diagnostic the pane shows on a failed
// refresh; the previously displayed transcript stays in place.
type errorResponse struct {
	Error string `json:"error"`
}

// GetTranscript handles GET /api/v1/transcript/{conversation_id}.
func (h *TranscriptHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	viewer, ok := GetViewerFromContext(ctx, w)
	if !ok {
		return
	}

	// Path should be /api/v1/transcript/{conversation_id}
	conversationID := strings.TrimPrefix(r.URL.Path, "/api/v1/transcript/")
	if conversationID == "" || strings.Contains(conversationID, "/") {
		http.Error(w, "conversation_id is required", http.StatusBadRequest)
		return
	}

	view, err := h.service.Transcript(ctx, conversationID, viewer)
	if err != nil {
		var credErr *conversation.CredentialError
		var fetchErr *conversation.FetchError
		switch {
		case errors.As(err, &credErr):
			log.Printf("TranscriptHandler: Credential acquisition failed: %v", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "mail credential unavailable"})
		case errors.As(err, &fetchErr):
			log.Printf("TranscriptHandler: Fetch failed for conversation %s: %v", conversationID, err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "conversation fetch failed"})
		default:
			log.Printf("TranscriptHandler: Unexpected error: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}
