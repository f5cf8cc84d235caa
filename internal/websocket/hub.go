package websocket

import (
	"context"
	"sync"

	"nexora-chat/internal/metrics"
)

// Hub keeps track of open clients so they can be counted and closed on
// shutdown. Clients never talk to each other through it.
type Hub struct {
	mu sync.RWMutex

	// clients maps client ID to client (for cleanup)
	clients map[string]*Client

	// Control channel; a single queue keeps register/unregister ordered
	events  chan hubEvent
	stopped chan struct{} // Closed when Run returns
}

// hubEvent represents a client connection or disconnection
type hubEvent struct {
	client   *Client
	register bool // true = connect, false = disconnect
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		events:  make(chan hubEvent, 512),
		stopped: make(chan struct{}),
	}
}

// Run starts the hub's event loop. When ctx ends every remaining client is
// closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case ev := <-h.events:
			if ev.register {
				h.addClient(ev.client)
			} else {
				h.removeClient(ev.client)
			}
		}
	}
}

// Register adds a new client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.events <- hubEvent{client: client, register: true}:
	case <-h.stopped:
		client.Close()
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.events <- hubEvent{client: client, register: false}:
	case <-h.stopped:
	}
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// addClient adds a new client to the hub (internal)
func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	metrics.WSConnections.Inc()
}

// removeClient removes a client from the hub (internal)
func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.ID]
	delete(h.clients, client.ID)
	h.mu.Unlock()
	if ok {
		metrics.WSConnections.Dec()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
		metrics.WSConnections.Dec()
	}
}
