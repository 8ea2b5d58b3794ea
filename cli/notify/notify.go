// Package notify is the root-scoped notification service. Controllers
// publish transient outcomes; status bars and command handlers subscribe.
// One hub per process, created at startup and injected — views never hold
// their own toast state.
package notify

import (
	"sync"
	"time"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, auto-dismissing message.
type Notification struct {
	Level   Level
	Summary string
	Detail  string
	Time    time.Time
}

const subscriberBuffer = 16

// Hub fans notifications out to subscribers. Publish never blocks: a
// subscriber that stops draining loses messages rather than stalling the
// publisher.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Notification
	next int
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Notification)}
}

// Subscribe registers a listener. The returned cancel func must be called
// to release the channel.
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Notification, subscriberBuffer)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish delivers n to every live subscriber without blocking.
func (h *Hub) Publish(n Notification) {
	if n.Time.IsZero() {
		n.Time = time.Now()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Error publishes an error-level notification.
func (h *Hub) Error(summary, detail string) {
	h.Publish(Notification{Level: LevelError, Summary: summary, Detail: detail})
}

// Success publishes a success-level notification.
func (h *Hub) Success(summary string) {
	h.Publish(Notification{Level: LevelSuccess, Summary: summary})
}
