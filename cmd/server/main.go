package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"chatpane/internal/api"
	"chatpane/internal/auth"
	"chatpane/internal/chat"
	"chatpane/internal/config"
	"chatpane/internal/conversation"
	"chatpane/internal/graph"
	"chatpane/internal/identity"
	ws "chatpane/internal/websocket"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	server := NewServer(cfg)

	address := ":" + cfg.Port
	log.Printf("Chatpane backend server starting on %s (environment: %s)", address, cfg.Environment)

	if err := http.ListenAndServe(address, server); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// NewServer creates and returns a new HTTP handler for the chatpane API
// server.
func NewServer(cfg *config.Config) http.Handler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.Timezone, err)
	}

	provider := newIdentityProvider(cfg)
	graphClient := graph.NewClient(cfg.GraphBaseURL)
	service := conversation.NewService(provider, graphClient, []string{cfg.GraphScope}, cfg.PageSize, loc)
	hub := ws.NewHub(10)
	simulator := chat.NewSimulator(cfg.ReplyDelay)

	transcriptHandler := api.NewTranscriptHandler(service)
	wsHandler := api.NewWebSocketHandler(hub, service, simulator, cfg.PaneToken)

	mux := http.NewServeMux()

	mux.HandleFunc("/", handleRoot)

	// Handle /api/v1/transcript/{conversation_id} pattern
	mux.Handle("/api/v1/transcript/", auth.RequireAuth(cfg.PaneToken, http.HandlerFunc(transcriptHandler.GetTranscript)))

	// WebSocket handler handles its own authentication via query parameter
	// (since browsers can't set headers on WebSocket connections).
	mux.Handle("/api/v1/ws", http.HandlerFunc(wsHandler.Handle))

	return mux
}

// newIdentityProvider picks the identity path: a full app registration, or
// a static token in development.
func newIdentityProvider(cfg *config.Config) identity.Provider {
	if cfg.UsesStaticToken() {
		log.Printf("Identity: Using static development token")
		return &identity.StaticProvider{Token: cfg.StaticGraphToken}
	}
	provider, err := identity.NewClientCredentialsProvider(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
	if err != nil {
		log.Fatalf("Failed to create identity provider: %v", err)
	}
	return provider
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "Chatpane API is running")
}
