package spectate

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 512
	sendBuffer     = 16
)

// Message is the envelope for everything on the socket.
type Message struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type outgoing struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Client is one connected spectator.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	addr string
	send chan []byte
}

// Hub keeps the set of connected spectators and fans frames out to them.
type Hub struct {
	clients    map[*Client]struct{}
	unregister chan *Client
	done       chan struct{}
	closed     bool
	mu         sync.RWMutex

	upgrader  websocket.Upgrader
	onMessage func(*Client, Message)
}

// NewHub accepts websocket upgrades from origins (any origin when empty).
// onMessage, when non-nil, receives every message a client sends.
func NewHub(origins []string, onMessage func(*Client, Message)) *Hub {
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		onMessage:  onMessage,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(origins),
	}
	return h
}

func originChecker(origins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(origins) == 0 || origin == "" {
			return true
		}
		for _, allowed := range origins {
			if origin == allowed {
				return true
			}
		}
		return false
	}
}

// Run removes departing clients until ctx ends, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("[ws] %s disconnected (%d watching)", c.addr, n)

		case <-ctx.Done():
			h.mu.Lock()
			h.closed = true
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastFrame sends snap to every client. Clients whose buffer is full
// miss this frame.
func (h *Hub) BroadcastFrame(snap *Snapshot) {
	data, err := encode("frame", snap)
	if err != nil {
		log.Printf("[ws] encode frame: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[ws] send buffer full for %s, dropping frame %d", c.addr, snap.Tick)
		}
	}
}

// Serve upgrades the request and blocks in the client's read loop. first,
// when non-nil, is queued before any broadcast frame.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, first *Snapshot) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &Client{
		hub:  h,
		conn: conn,
		addr: r.RemoteAddr,
		send: make(chan []byte, sendBuffer),
	}
	if first != nil {
		if data, err := encode("frame", first); err == nil {
			c.send <- data
		}
	}

	if !h.add(c) {
		conn.Close()
		return ErrStopped
	}
	go c.writePump()
	c.readPump()
	return nil
}

func (h *Hub) add(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	log.Printf("[ws] %s connected (%d watching)", c.addr, len(h.clients))
	return true
}

func encode(kind string, data interface{}) ([]byte, error) {
	return json.Marshal(outgoing{Type: kind, Data: data})
}

// Send queues an arbitrary message for this client only.
func (c *Client) Send(kind string, data interface{}) {
	msg, err := encode(kind, data)
	if err != nil {
		log.Printf("[ws] encode %s: %v", kind, err)
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		log.Printf("[ws] send buffer full for %s, dropping %s", c.addr, kind)
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[ws] read error from %s: %v", c.addr, err)
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Send("error", map[string]string{"message": "invalid message"})
			continue
		}
		if c.hub.onMessage != nil {
			c.hub.onMessage(c, msg)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[ws] write error for %s: %v", c.addr, err)
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
