package live

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

func newTestServer(t *testing.T, hub *Hub, eventID uint) *httptest.Server {
	t.Helper()

	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Join(eventID, conn)
	}))
	t.Cleanup(server.Close)

	return server
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func TestHub_BroadcastReachesSubscribers(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub, 1)

	first := dial(t, server)
	second := dial(t, server)

	// Join runs in the handler goroutine; wait for both registrations.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[1]) == 2
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, []byte(`{"type":"event_updated"}`))

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"event_updated"}`, string(message))
	}
}

func TestHub_BroadcastIsScopedToTheEvent(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub, 2)
	conn := dial(t, server)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[2]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(1, []byte("other room"))
	hub.Broadcast(2, []byte("this room"))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "this room", string(message))
}

func TestHub_ClosedClientIsRemoved(t *testing.T) {
	hub := NewHub()
	server := newTestServer(t, hub, 3)
	conn := dial(t, server)

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.rooms[3]) == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.rooms[3]
		return !ok
	}, time.Second, 10*time.Millisecond)
}
