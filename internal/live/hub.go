// Package live implements the per-event update channels real-time subscribers
// attach to over websockets. Delivery is best-effort: a slow client is dropped
// rather than blocking the broadcast.
package live

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Client struct {
	hub     *Hub
	eventID uint
	conn    *websocket.Conn
	send    chan []byte
}

type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Client]struct{}),
	}
}

// Join registers conn as a subscriber of eventID's update channel and starts
// its read/write pumps. The client is removed when the connection closes.
func (h *Hub) Join(eventID uint, conn *websocket.Conn) *Client {
	client := &Client{
		hub:     h,
		eventID: eventID,
		conn:    conn,
		send:    make(chan []byte, 256),
	}

	h.mu.Lock()
	room, ok := h.rooms[eventID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[eventID] = room
	}
	room[client] = struct{}{}
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	return client
}

func (h *Hub) leave(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.eventID]
	if !ok {
		return
	}
	if _, ok = room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.eventID)
	}
}

// Broadcast pushes message to every subscriber of eventID's channel. Clients
// whose buffers are full are disconnected.
func (h *Hub) Broadcast(eventID uint, message []byte) {
	h.mu.RLock()
	room := h.rooms[eventID]
	stale := make([]*Client, 0)
	for client := range room {
		select {
		case client.send <- message:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.leave(client)
	}
}

func (c *Client) writePump() {
	defer func() {
		c.conn.Close()
	}()
	for message := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err = w.Close(); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump drains inbound frames so pings and close handshakes are processed;
// subscribers never send application data.
func (c *Client) readPump() {
	defer func() {
		c.hub.leave(c)
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Debug("live client read error", zap.Error(err))
			}
			return
		}
	}
}
