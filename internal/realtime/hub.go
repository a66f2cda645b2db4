package realtime

import (
	"sync"
	"time"

	"github.com/goccy/go-json"

	"trending-api/internal/logging"
)

// Event types pushed to admin dashboards.
const (
	EventCategoriesUpdated = "categories_updated"
	EventCacheCleared      = "cache_cleared"
	EventCacheSwept        = "cache_swept"
)

// Event is the JSON message sent to every connected client.
type Event struct {
	Type string         `json:"type"`
	At   time.Time      `json:"at"`
	Data map[string]any `json:"data,omitempty"`
}

// Client is a single connection; the network side lives in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub tracks connected clients per user and fans events out to all of them.
type Hub struct {
	mu              sync.RWMutex
	userIdToClients map[string]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{userIdToClients: make(map[string]map[Client]struct{})}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIdToClients[userID]; !ok {
		h.userIdToClients[userID] = make(map[Client]struct{})
	}
	h.userIdToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIdToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIdToClients, userID)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.userIdToClients {
		n += len(clients)
	}
	return n
}

// Publish encodes evt and sends it to every client. It returns the number
// of clients the message was delivered to.
func (h *Hub) Publish(evt Event) int {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		logging.Error().Err(err).Str("event", evt.Type).Msg("Failed to encode realtime event")
		return 0
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	delivered := 0
	for _, clients := range h.userIdToClients {
		for c := range clients {
			// Failed writes are cleaned up by the handler's reader loop.
			if c.Send(msg) {
				delivered++
			}
		}
	}
	return delivered
}
