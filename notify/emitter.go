package notify

import (
	"sync"
	"time"
)

var (
	mu         sync.RWMutex
	defaultHub *Hub
)

// SetHub wires the process-wide hub handlers emit into.
func SetHub(h *Hub) {
	mu.Lock()
	defaultHub = h
	mu.Unlock()
}

// Emit broadcasts an event to subscribers. A nil hub makes it a no-op, so
// handlers never need to care whether notifications are enabled.
func Emit(eventType string, payload interface{}) {
	mu.RLock()
	h := defaultHub
	mu.RUnlock()

	if h == nil {
		return
	}
	h.Broadcast(Event{Type: eventType, Payload: payload, Timestamp: time.Now()})
}
