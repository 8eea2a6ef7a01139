// Package ws adapts gorilla/websocket connections to session.Transport: one
// read pump and one buffered write pump per connection, so a slow or
// misbehaving client can never block a room's broadcast.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/liamiak1/hyper-fairy-chess/pkg/session"
	"github.com/seekerror/logw"
)

const (
	writeTimeout  = 10 * time.Second
	pongTimeout   = 60 * time.Second
	pingInterval  = (pongTimeout * 9) / 10
	maxMessageSize = 1 << 16
	sendBufferSize = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub owns every live connection and is the session.Transport implementation
// the Dispatcher sends through.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*conn

	onMessage func(ctx context.Context, connID string, raw []byte)
	onClose   func(connID string)
}

// NewHub creates an empty Hub. onMessage is called for every inbound frame
// (normally Dispatcher.Handle); onClose fires once a connection's pumps
// exit, however that happens.
func NewHub(onMessage func(ctx context.Context, connID string, raw []byte), onClose func(connID string)) *Hub {
	return &Hub{
		conns:     map[string]*conn{},
		onMessage: onMessage,
		onClose:   onClose,
	}
}

// ServeHTTP upgrades the request to a websocket and runs its pumps until
// the connection closes. connID identifies this socket to the Dispatcher
// and to SendToConnection/BroadcastToRoom.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, connID string) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logw.Errorf(r.Context(), "ws: upgrade failed: %v", err)
		return
	}

	c := &conn{ws: wsConn, send: make(chan []byte, sendBufferSize)}
	h.register(connID, c)
	defer h.unregister(connID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.writePump()
	}()
	go func() {
		defer wg.Done()
		c.readPump(ctx, func(raw []byte) { h.onMessage(ctx, connID, raw) })
	}()
	wg.Wait()
}

func (h *Hub) register(connID string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[connID] = c
}

func (h *Hub) unregister(connID string) {
	h.mu.Lock()
	c, ok := h.conns[connID]
	delete(h.conns, connID)
	h.mu.Unlock()
	if ok {
		c.close()
	}
	if h.onClose != nil {
		h.onClose(connID)
	}
}

// SendToConnection implements session.Transport.
func (h *Hub) SendToConnection(connID string, env session.Envelope) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	c.enqueue(env)
}

// BroadcastToRoom implements session.Transport, sending env to every
// connection BindRoom has associated with roomCode.
func (h *Hub) BroadcastToRoom(roomCode string, env session.Envelope) {
	for _, connID := range h.roomMembers(roomCode) {
		h.SendToConnection(connID, env)
	}
}

func (h *Hub) roomMembers(roomCode string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	var ids []string
	for connID, c := range h.conns {
		if c.roomCode == roomCode {
			ids = append(ids, connID)
		}
	}
	return ids
}

// BindRoom records which room a connection belongs to, purely so
// BroadcastToRoom can find it; Dispatcher calls this when it binds a
// connection for CREATE_ROOM/JOIN_ROOM/RECONNECT, before the room has
// processed the request.
func (h *Hub) BindRoom(connID, roomCode string) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if ok {
		c.roomCode = roomCode
	}
}

type conn struct {
	ws       *websocket.Conn
	send     chan []byte
	closeOnce sync.Once

	roomCode string
}

func (c *conn) enqueue(env session.Envelope) {
	raw, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
		// Slow consumer: drop rather than block the room's broadcast.
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() { close(c.send) })
}

func (c *conn) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case raw, ok := <-c.send:
			if !ok {
				c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *conn) readPump(ctx context.Context, onMessage func([]byte)) {
	defer c.ws.Close()
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
		return nil
	})

	for {
		_, raw, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		onMessage(raw)
	}
}
