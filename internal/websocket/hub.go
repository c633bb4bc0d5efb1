package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Session wraps one pane's WebSocket connection.
type Session struct {
	conn *websocket.Conn

	// writeMu serializes writes; gorilla/websocket allows only one
	// concurrent writer per connection.
	writeMu sync.Mutex
}

// Conn returns the underlying WebSocket connection.
func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

// Send marshals a payload and writes it to this session.
func (s *Session) Send(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub tracks active pane sessions per viewer mailbox. A viewer may have
// several panes open at once (reading pane plus popped-out items).
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]map[*Session]struct{} // viewer address -> sessions
	maxPerViewer int
}

// NewHub creates a Hub with a per-viewer session limit.
func NewHub(maxPerViewer int) *Hub {
	if maxPerViewer <= 0 {
		maxPerViewer = 10
	}
	return &Hub{
		sessions:     make(map[string]map[*Session]struct{}),
		maxPerViewer: maxPerViewer,
	}
}

// Register adds a pane session for the given viewer. If the per-viewer
// limit is exceeded, the new connection is closed and nil is returned.
func (h *Hub) Register(viewer string, conn *websocket.Conn) *Session {
	h.mu.Lock()
	defer h.mu.Unlock()

	viewerSessions, ok := h.sessions[viewer]
	if !ok {
		viewerSessions = make(map[*Session]struct{})
		h.sessions[viewer] = viewerSessions
	}

	if len(viewerSessions) >= h.maxPerViewer {
		log.Printf("websocket: viewer %s exceeded max sessions (%d), closing new connection", viewer, h.maxPerViewer)
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "too many sessions for this viewer"),
			// Zero deadline - best effort.
			time.Time{},
		)
		_ = conn.Close()
		return nil
	}

	session := &Session{conn: conn}
	viewerSessions[session] = struct{}{}
	return session
}

// Unregister removes a session for the given viewer and closes the
// connection.
func (h *Hub) Unregister(viewer string, session *Session) {
	if session == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	viewerSessions, ok := h.sessions[viewer]
	if !ok {
		_ = session.conn.Close()
		return
	}

	delete(viewerSessions, session)
	if len(viewerSessions) == 0 {
		delete(h.sessions, viewer)
	}

	_ = session.conn.Close()
}

// Broadcast sends a payload to every active session of the viewer.
func (h *Hub) Broadcast(viewer string, v interface{}) {
	h.mu.RLock()
	viewerSessions := h.sessions[viewer]
	h.mu.RUnlock()

	if len(viewerSessions) == 0 {
		return
	}

	for session := range viewerSessions {
		if err := session.Send(v); err != nil {
			log.Printf("websocket: failed to write message for viewer %s: %v", viewer, err)
			// Best-effort cleanup: unregister this session.
			go h.Unregister(viewer, session)
		}
	}
}

// ActiveSessions returns the number of active sessions for a viewer.
func (h *Hub) ActiveSessions(viewer string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.sessions[viewer])
}
