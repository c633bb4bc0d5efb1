package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"chatpane/internal/auth"
	"chatpane/internal/chat"
	"chatpane/internal/conversation"
	"chatpane/internal/selection"
	"chatpane/internal/transcript"
	ws "chatpane/internal/websocket"
)

// WebSocketHandler handles the /api/v1/ws endpoint: the pane's selection
// bridge and the push channel for rebuilt transcripts.
type WebSocketHandler struct {
	hub       *ws.Hub
	service   conversation.TranscriptService
	simulator *chat.Simulator
	paneToken string
}

// NewWebSocketHandler creates a new WebSocketHandler instance.
func NewWebSocketHandler(hub *ws.Hub, service conversation.TranscriptService, simulator *chat.Simulator, paneToken string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:       hub,
		service:   service,
		simulator: simulator,
		paneToken: paneToken,
	}
}

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The add-in pane is served from the host application's domain;
		// this server is expected to sit behind a reverse proxy in a
		// trusted environment.
		return true
	},
}

// inboundMessage is what the pane sends over the selection bridge.
type inboundMessage struct {
	Type  string           `json:"type"`
	Items []selection.Item `json:"items,omitempty"`
	Text  string           `json:"text,omitempty"`
}

// Outbound payload types.
type transcriptMessage struct {
	Type string          `json:"type"`
	View transcript.View `json:"view"`
}

type entryMessage struct {
	Type  string               `json:"type"`
	Entry transcript.ViewEntry `json:"entry"`
}

type diagnosticMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Handle upgrades the HTTP connection to a WebSocket and runs the pane
// session. Authentication uses a query parameter (?token=...) since
// browsers cannot set headers on WebSocket connections; the viewer's
// mailbox address rides along as ?viewer=...
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		// Fallback to the Authorization header for tools that can set it.
		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			fields := strings.Fields(authHeader)
			if len(fields) >= 2 && strings.EqualFold(fields[0], "Bearer") {
				token = strings.TrimSpace(strings.Join(fields[1:], " "))
			}
		}
	}

	viewer, err := auth.ValidateToken(h.paneToken, token, r.URL.Query().Get("viewer"))
	if err != nil {
		log.Printf("WebSocketHandler: Authentication failed: %v", err)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocketHandler: failed to upgrade connection for viewer %s: %v", viewer, err)
		return
	}

	session := h.hub.Register(viewer, conn)
	if session == nil {
		log.Printf("WebSocketHandler: Connection rejected for viewer %s (max sessions exceeded)", viewer)
		return
	}

	log.Printf("WebSocketHandler: Pane session established for viewer %s", viewer)

	go h.runSession(viewer, session)
}

// runSession reads pane messages until the connection drops, refreshing
// the transcript on selection changes and echoing chat input. Teardown
// cancels any in-flight fetch and pending simulated replies so a
// discarded pane is never updated.
func (h *WebSocketHandler) runSession(viewer string, session *ws.Session) {
	ctx, cancel := context.WithCancel(context.Background())
	refresher := conversation.NewRefresher(h.service)
	var replyCancels []func()

	defer func() {
		cancel()
		refresher.Stop()
		for _, cancelReply := range replyCancels {
			cancelReply()
		}
		h.hub.Unregister(viewer, session)
		log.Printf("WebSocketHandler: Pane session closed for viewer %s", viewer)
	}()

	for {
		var msg inboundMessage
		if err := session.Conn().ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("WebSocketHandler: Read error for viewer %s: %v", viewer, err)
			}
			return
		}

		switch msg.Type {
		case "selection_changed":
			h.handleSelectionChanged(ctx, viewer, session, refresher, msg.Items)
		case "chat_input":
			if cancelReply := h.handleChatInput(viewer, session, msg.Text); cancelReply != nil {
				replyCancels = append(replyCancels, cancelReply)
			}
		default:
			log.Printf("WebSocketHandler: Unknown message type %q from viewer %s", msg.Type, viewer)
		}
	}
}

// handleSelectionChanged resolves the reported selection and kicks off a
// latest-wins transcript refresh. An unusable selection only surfaces a
// diagnostic; the previously pushed transcript stays on screen.
func (h *WebSocketHandler) handleSelectionChanged(ctx context.Context, viewer string, session *ws.Session, refresher *conversation.Refresher, items []selection.Item) {
	item, err := selection.Resolve(items)
	if err != nil {
		log.Printf("WebSocketHandler: Selection unavailable for viewer %s: %v", viewer, err)
		h.sendDiagnostic(session, "no readable selection")
		return
	}

	refresher.Refresh(ctx, item.ConversationID, viewer,
		func(view transcript.View) {
			if err := session.Send(transcriptMessage{Type: "transcript", View: view}); err != nil {
				log.Printf("WebSocketHandler: Failed to push transcript to viewer %s: %v", viewer, err)
			}
		},
		func(err error) {
			log.Printf("WebSocketHandler: Refresh failed for conversation %s: %v", item.ConversationID, err)
			var credErr *conversation.CredentialError
			if errors.As(err, &credErr) {
				h.sendDiagnostic(session, "mail credential unavailable")
				return
			}
			h.sendDiagnostic(session, "conversation fetch failed")
		},
	)
}

// handleChatInput echoes a submitted line as an own bubble and arms the
// simulated reply. Returns the reply's cancel function, or nil when the
// input was blank.
func (h *WebSocketHandler) handleChatInput(viewer string, session *ws.Session, text string) func() {
	entry, ok := chat.OwnEntry(text, "", viewer, time.Now())
	if !ok {
		return nil
	}

	if err := session.Send(entryMessage{Type: "chat_echo", Entry: transcript.BuildViewEntry(entry)}); err != nil {
		log.Printf("WebSocketHandler: Failed to echo chat input for viewer %s: %v", viewer, err)
		return nil
	}

	return h.simulator.Schedule(func(reply string) {
		replyEntry := chat.ReplyEntry(reply, time.Now())
		if err := session.Send(entryMessage{Type: "simulated_reply", Entry: transcript.BuildViewEntry(replyEntry)}); err != nil {
			log.Printf("WebSocketHandler: Failed to push simulated reply for viewer %s: %v", viewer, err)
		}
	})
}

func (h *WebSocketHandler) sendDiagnostic(session *ws.Session, message string) {
	if err := session.Send(diagnosticMessage{Type: "diagnostic", Message: message}); err != nil {
		log.Printf("WebSocketHandler: Failed to send diagnostic: %v", err)
	}
}
