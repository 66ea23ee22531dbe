package stream

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"market-sim-go/sim"
)

// Hub broadcasts snapshots to websocket clients as JSON, one message per
// tick. External plotting clients attach here to consume a run live.
type Hub struct {
	upgrader websocket.Upgrader

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The stream is broadcast-only simulation output.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain client frames so pings/closes are processed; drop the
	// connection once the reader fails.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast sends a snapshot to every connected client. Clients whose write
// fails are dropped.
func (h *Hub) Broadcast(s sim.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteJSON(s); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// Run pumps a publisher subscription into the hub until the channel closes.
func (h *Hub) Run(snaps <-chan sim.Snapshot) {
	for s := range snaps {
		h.Broadcast(s)
	}
}

// ClientCount returns the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *Hub) drop(conn *websocket.Conn) {
	conn.Close()
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}
