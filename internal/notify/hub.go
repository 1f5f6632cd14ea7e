// Package notify fans a "cart changed" signal out to connected
// observers. Delivery is best effort: an observer that is not ready is
// skipped, never queued or retried, and a slow observer can never delay
// the mutation that triggered the broadcast. Observers joining after a
// change receive no replay.
package notify

import "sync"

// Hub is a registry of observer channels with explicit join/leave
// lifecycle. The zero value is not usable; construct with NewHub.
type Hub struct {
	mu        sync.Mutex
	observers map[chan struct{}]struct{}
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{observers: make(map[chan struct{}]struct{})}
}

// Join registers a new observer and returns its signal channel. The
// channel has capacity 1 so one pending signal can be held while the
// observer is busy; further signals coalesce into it.
func (h *Hub) Join() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.observers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Leave removes an observer. Safe to call more than once; the channel
// receives nothing after Leave returns.
func (h *Hub) Leave(ch chan struct{}) {
	h.mu.Lock()
	delete(h.observers, ch)
	h.mu.Unlock()
}

// Broadcast signals every registered observer. It iterates a snapshot
// of the registry taken under the lock, so observers joining or leaving
// mid-broadcast are handled safely, and sends without blocking: a
// channel whose buffer is full already has a signal pending, which is
// enough for an observer that refetches the whole cart.
func (h *Hub) Broadcast() {
	h.mu.Lock()
	observers := make([]chan struct{}, 0, len(h.observers))
	for ch := range h.observers {
		observers = append(observers, ch)
	}
	h.mu.Unlock()

	for _, ch := range observers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Len returns the number of registered observers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.observers)
}
