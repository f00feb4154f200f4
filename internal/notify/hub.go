package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/solvetec-mx/gestion-sesiones/internal/services"
)

// Listener is an open connection able to receive broadcast events.
// Registration and removal are driven by the transport layer.
type Listener interface {
	ID() string
	Deliver(event []byte) error
}

// Event is the envelope every listener receives.
type Event struct {
	Event      string      `json:"event"`
	ChangeType string      `json:"changeType,omitempty"`
	TableName  string      `json:"tableName,omitempty"`
	Message    string      `json:"message,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Hub keeps the registry of connected listeners and fans events out to all
// of them. Delivery is best-effort: one broken listener never blocks the
// others or fails the triggering operation.
type Hub struct {
	mu        sync.RWMutex
	listeners map[string]Listener
}

func NewHub() *Hub {
	return &Hub{listeners: make(map[string]Listener)}
}

func (h *Hub) Register(l Listener) {
	h.mu.Lock()
	h.listeners[l.ID()] = l
	h.mu.Unlock()
	slog.Info("listener registered", "listener", l.ID(), "total", h.Count())
}

func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	delete(h.listeners, id)
	h.mu.Unlock()
	slog.Info("listener unregistered", "listener", id, "total", h.Count())
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.listeners)
}

// BroadcastChange fans a table-change event out to every listener.
func (h *Hub) BroadcastChange(changeType, tableName string, payload interface{}) error {
	if strings.TrimSpace(changeType) == "" || strings.TrimSpace(tableName) == "" {
		return services.NewValidationError("changeType y tableName son requeridos")
	}

	return h.broadcast(Event{
		Event:      "change",
		ChangeType: changeType,
		TableName:  tableName,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	})
}

// BroadcastMessage fans a free-text message out to every listener.
func (h *Hub) BroadcastMessage(message string, payload interface{}) error {
	if strings.TrimSpace(message) == "" {
		return services.NewValidationError("el mensaje es requerido")
	}

	return h.broadcast(Event{
		Event:     "message",
		Message:   message,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	})
}

func (h *Hub) broadcast(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	h.mu.RLock()
	targets := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		targets = append(targets, l)
	}
	h.mu.RUnlock()

	for _, l := range targets {
		if err := l.Deliver(data); err != nil {
			slog.Warn("listener delivery failed", "listener", l.ID(), "error", err.Error())
		}
	}
	return nil
}
