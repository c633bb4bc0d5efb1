package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// dialPair upgrades one connection through the hub and returns the
// client side plus the registered session.
func dialPair(t *testing.T, hub *Hub, viewer string) (*websocket.Conn, *Session, func()) {
	t.Helper()

	sessions := make(chan *Session, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		sessions <- hub.Register(viewer, conn)
	}))

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	session := <-sessions
	return client, session, func() {
		_ = client.Close()
		server.Close()
	}
}

func TestHub(t *testing.T) {
	t.Run("registers and counts sessions", func(t *testing.T) {
		hub := NewHub(10)
		_, session, teardown := dialPair(t, hub, "me@example.com")
		defer teardown()

		require.NotNil(t, session)
		assert.Equal(t, 1, hub.ActiveSessions("me@example.com"))
		assert.Equal(t, 0, hub.ActiveSessions("other@example.com"))
	})

	t.Run("broadcast reaches every session of the viewer", func(t *testing.T) {
		hub := NewHub(10)
		clientA, _, teardownA := dialPair(t, hub, "me@example.com")
		defer teardownA()
		clientB, _, teardownB := dialPair(t, hub, "me@example.com")
		defer teardownB()

		hub.Broadcast("me@example.com", map[string]string{"type": "diagnostic", "message": "hi"})

		for _, client := range []*websocket.Conn{clientA, clientB} {
			_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
			var payload map[string]string
			require.NoError(t, client.ReadJSON(&payload))
			assert.Equal(t, "diagnostic", payload["type"])
		}
	})

	t.Run("unregister removes the session", func(t *testing.T) {
		hub := NewHub(10)
		_, session, teardown := dialPair(t, hub, "me@example.com")
		defer teardown()

		hub.Unregister("me@example.com", session)
		assert.Equal(t, 0, hub.ActiveSessions("me@example.com"))
	})

	t.Run("rejects sessions over the per-viewer limit", func(t *testing.T) {
		hub := NewHub(1)
		_, first, teardownFirst := dialPair(t, hub, "me@example.com")
		defer teardownFirst()
		require.NotNil(t, first)

		_, second, teardownSecond := dialPair(t, hub, "me@example.com")
		defer teardownSecond()

		assert.Nil(t, second)
		assert.Equal(t, 1, hub.ActiveSessions("me@example.com"))
	})

	t.Run("broadcast to unknown viewer is a no-op", func(t *testing.T) {
		hub := NewHub(10)
		hub.Broadcast("nobody@example.com", map[string]string{"type": "diagnostic"})
	})
}
