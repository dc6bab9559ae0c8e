package realtime

import (
	"sync"

	"github.com/rs/zerolog/log"

	"parlour.service/internal/core/model"
)

// Hub owns the registry of connected dashboard subscribers. Subscriptions
// are explicit: a session registers on connect and is removed on
// disconnect. There is no replay buffer; a subscriber that connects after
// an event was published catches up via the attendance list endpoints.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

// Subscriber is a handle for one connected client. Events arrive on a
// buffered channel in publish order; the channel is closed when the
// subscription is released.
type Subscriber struct {
	send chan model.EnrichedAttendanceEvent
}

// Events yields published punch events for as long as the subscription is live.
func (s *Subscriber) Events() <-chan model.EnrichedAttendanceEvent {
	return s.send
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers a new subscriber. The caller must release it with
// Unsubscribe when the underlying connection goes away.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{
		send: make(chan model.EnrichedAttendanceEvent, sendBufferSize),
	}

	h.mu.Lock()
	h.subscribers[sub] = struct{}{}
	count := len(h.subscribers)
	h.mu.Unlock()

	log.Debug().Int("subscribers", count).Msg("Dashboard subscriber registered")
	return sub
}

// Unsubscribe removes the subscriber and closes its event channel.
// Safe to call once per subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subscribers[sub]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subscribers, sub)
	count := len(h.subscribers)
	close(sub.send)
	h.mu.Unlock()

	log.Debug().Int("subscribers", count).Msg("Dashboard subscriber unregistered")
}

// Publish delivers the event to every subscriber connected right now,
// at most once each. A subscriber whose buffer is full misses the event
// rather than blocking the publisher.
func (h *Hub) Publish(event model.EnrichedAttendanceEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subscribers {
		select {
		case sub.send <- event:
		default:
			log.Warn().Str("event_id", event.ID).Msg("Subscriber buffer full, event dropped")
		}
	}
}

// SubscriberCount reports how many sessions are currently registered.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
