// Package stream fans application events out to connected SSE clients.
package stream

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/exhibitkit/showroom/internal/bus"
	"github.com/exhibitkit/showroom/internal/model"
)

// bridgedTopics is every event type forwarded to the stream
var bridgedTopics = []model.EventType{
	model.EventLoginSucceeded,
	model.EventLoginFailed,
	model.EventLoginAcknowledged,
	model.EventUserSaved,
	model.EventScreenChanged,
	model.EventProject1Chosen,
	model.EventProject2Chosen,
	model.EventBundleLoaded,
	model.EventBundleLoadFailed,
	model.EventLibraryReady,
	model.EventVideoChosen,
	model.EventPlayerReady,
	model.EventDurationKnown,
	model.EventPauseChanged,
	model.EventPositionChanged,
	model.EventPositionReport,
	model.EventPlaybackEnded,
	model.EventPlaybackStopped,
	model.EventSceneBuilt,
	model.EventTourStateChanged,
	model.EventTeleportStarted,
	model.EventTeleportCompleted,
}

// envelope is the JSON body of a streamed event
type envelope struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   any             `json:"payload,omitempty"`
}

// Hub manages the connected SSE clients
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	once       sync.Once

	subs []*bus.Subscription
}

// NewHub creates a hub and starts its event loop
func NewHub(logger *slog.Logger) *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("component", "stream")),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		done:       make(chan struct{}),
	}
	go h.run()
	return h
}

// Attach subscribes the hub to every bridged bus topic. Bundle payloads
// are stripped to their metadata before streaming; clients have no use
// for raw asset bytes.
func (h *Hub) Attach(b *bus.Bus) {
	for _, topic := range bridgedTopics {
		h.subs = append(h.subs, b.Subscribe(topic, h.forward))
	}
}

func (h *Hub) forward(evt model.Event) {
	env := envelope{
		Type:      evt.Type,
		Timestamp: evt.Timestamp,
		Payload:   evt.Payload,
	}
	if loaded, ok := evt.Payload.(model.BundleLoadedPayload); ok {
		env.Payload = map[string]any{
			"request_id": loaded.RequestID,
			"name":       loaded.Bundle.Name,
			"assets":     len(loaded.Bundle.Assets),
		}
	}

	data, err := json.Marshal(env)
	if err != nil {
		h.logger.Error("stream event marshal failed",
			slog.String("type", string(evt.Type)),
			slog.Any("error", err))
		return
	}
	h.Broadcast(formatSSEMessage(string(evt.Type), string(data)))
}

func (h *Hub) run() {
	h.logger.Info("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered", slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					dropped++
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("sse message dropped - client buffer full",
					slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Broadcast sends a message to all clients
func (h *Hub) Broadcast(message []byte) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// Close detaches the hub from the bus and disconnects all clients
func (h *Hub) Close() {
	bus.CloseAll(h.subs)
	h.once.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with event name and data
// Multi-line data is properly formatted with "data: " prefix on each line
func formatSSEMessage(eventName, data string) []byte {
	msg := "event: " + eventName + "\n"
	lines := splitLines(data)
	for _, line := range lines {
		msg += "data: " + line + "\n"
	}
	msg += "\n"
	return []byte(msg)
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current string
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current)
			current = ""
		} else if r != '\r' {
			current += string(r)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}
