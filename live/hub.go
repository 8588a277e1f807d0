package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Frame is the envelope pushed to every connected client.
type Frame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans recorded results and scoreboard updates out to all connected
// websocket clients. There is a single feed; the league has one
// tournament and everyone watches the same data.
type Hub struct {
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			h.logger.Info("live client connected", slog.Int("clients", len(h.clients)))
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				client.closeSend()
				delete(h.clients, client)
				h.logger.Info("live client disconnected", slog.Int("clients", len(h.clients)))
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client; drop the frame rather than block the hub.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast marshals a frame and queues it for every client. Satisfies
// services.Broadcaster.
func (h *Hub) Broadcast(frameType string, payload interface{}) {
	messageBytes, err := json.Marshal(Frame{Type: frameType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal live frame",
			slog.String("type", frameType), slog.Any("error", err))
		return
	}
	h.broadcast <- messageBytes
}
