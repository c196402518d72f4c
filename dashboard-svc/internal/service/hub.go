package service

import (
	"sync"

	"jollof-hub/dashboard-svc/internal/domain"
)

const subscriberBuffer = 16

// Hub fans frames out to the connected dashboards. A subscriber whose buffer
// is full misses the frame; nothing is replayed.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan domain.Frame]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan domain.Frame]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// once the listener goes away.
func (h *Hub) Subscribe() (<-chan domain.Frame, func()) {
	ch := make(chan domain.Frame, subscriberBuffer)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish returns how many subscribers received the frame.
func (h *Hub) Publish(frame domain.Frame) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subs {
		select {
		case ch <- frame:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
