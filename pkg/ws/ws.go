// Package ws provides the real-time notification push channel over
// gorilla/websocket.
//
// Clients connect once per signed-in user; the hub indexes connections by
// user ID so notifications can be pushed to exactly the affected user:
//
//	var NotifyHub = ws.NewHub()
//	func init() { go NotifyHub.Run() }
//
//	// In the route handler (after auth):
//	ws.Upgrade(w, r, NotifyHub, userID)
//
//	// From a listener:
//	NotifyHub.SendTo(userID, payload)
//
// Push is best-effort: a slow or absent client drops the message, never
// blocks the sender.
package ws

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/shashiranjanraj/sokoni/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin checks are left to the auth middleware upstream.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// Client represents a single connected WebSocket client.
type Client struct {
	id     string
	userID uint
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
}

// readPump discards inbound frames (the notification channel is one-way)
// and keeps the connection's read deadline fresh via pongs.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "client", c.id, "error", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// outbound is a message targeted at one user's connections.
type outbound struct {
	userID uint
	data   []byte
}

// Hub maintains active connections indexed by user ID.
type Hub struct {
	byUser     map[uint]map[*Client]bool
	sendCh     chan outbound
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		byUser:     make(map[uint]map[*Client]bool),
		sendCh:     make(chan outbound, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.byUser[client.userID] == nil {
				h.byUser[client.userID] = make(map[*Client]bool)
			}
			h.byUser[client.userID][client] = true
			logger.Debug("ws: client connected", "client", client.id, "user_id", client.userID)

		case client := <-h.unregister:
			if conns, ok := h.byUser[client.userID]; ok && conns[client] {
				delete(conns, client)
				close(client.send)
				if len(conns) == 0 {
					delete(h.byUser, client.userID)
				}
				logger.Debug("ws: client disconnected", "client", client.id)
			}

		case msg := <-h.sendCh:
			for client := range h.byUser[msg.userID] {
				select {
				case client.send <- msg.data:
				default:
					close(client.send)
					delete(h.byUser[msg.userID], client)
				}
			}
		}
	}
}

// SendTo queues data for every open connection of the given user.
// Non-blocking; drops when the hub's queue is full.
func (h *Hub) SendTo(userID uint, data []byte) {
	select {
	case h.sendCh <- outbound{userID: userID, data: data}:
	default:
		logger.Warn("ws: hub queue full, push dropped", "user_id", userID)
	}
}

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting client under userID.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, userID uint) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{
		id:     uuid.NewString(),
		userID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 64),
	}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
