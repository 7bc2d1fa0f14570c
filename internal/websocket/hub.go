package websocket

import (
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// Hub is the live connection registry. Connections never address each other
// (timers are strictly per-user), so the hub only tracks membership and owns
// the closing of each client's Send channel.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	count atomic.Int64
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's registration loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.count.Store(int64(len(h.clients)))
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		}
	}
}

// ClientCount reports the number of open realtime connections.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}
