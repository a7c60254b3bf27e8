package sse

import (
	"fmt"
	"sync"
)

// Event represents a realtime event to be sent to subscribers of a topic.
type Event struct {
	Topic string      `json:"topic"`
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// UserTopic returns the topic scoped to a single user.
func UserTopic(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

// TeamTopic returns the topic scoped to a whole team.
func TeamTopic(teamID int64) string {
	return fmt.Sprintf("team:%d", teamID)
}

// Notifier is the publish side of the hub. Workflow services depend on this
// interface; delivery is fire-and-forget and at-most-once, so publishing must
// never fail the surrounding operation.
type Notifier interface {
	Publish(topic string, event Event)
}

// Hub manages subscribers and event broadcasting per topic.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a topic and returns the event
// channel and cleanup function.
func (h *Hub) Subscribe(topic string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[topic] == nil {
		h.subscribers[topic] = make(map[chan Event]struct{})
	}
	h.subscribers[topic][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[topic], ch)
		close(ch)
		if len(h.subscribers[topic]) == 0 {
			delete(h.subscribers, topic)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a topic.
func (h *Hub) Publish(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.Topic = topic
	if subs, ok := h.subscribers[topic]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a topic.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[topic]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all
// topics.
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
