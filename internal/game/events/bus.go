package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// AllEvents registers a function handler for every event type.
const AllEvents = "*"

type funcHandler struct {
	id        string
	eventType string
	fn        EventHandler
}

func (h funcHandler) matches(eventType string) bool {
	return h.eventType == AllEvents || h.eventType == eventType
}

// EventBus delivers events synchronously in the publisher's goroutine, in
// registration order: subscribers first, then function handlers. Handlers run
// outside the bus lock, so they may subscribe or unsubscribe while handling.
// A panicking handler is logged and does not stop delivery to the others.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	handlers    []funcHandler
	nextFuncID  int
	logger      zerolog.Logger
}

func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds subscriber, or replaces the one already registered under
// the same ID while keeping its position.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := subscriber.ID()
	replaced := false
	for i, s := range eb.subscribers {
		if s.ID() == id {
			eb.subscribers[i] = subscriber
			replaced = true
			break
		}
	}
	if !replaced {
		eb.subscribers = append(eb.subscribers, subscriber)
	}
	eb.logger.Debug().
		Str("subscriber_id", id).
		Bool("replaced", replaced).
		Msg("Subscriber added to event bus")
}

func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriberID {
			eb.subscribers = append(eb.subscribers[:i:i], eb.subscribers[i+1:]...)
			eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed from event bus")
			return
		}
	}
}

// SubscribeFunc registers handler for eventType (or AllEvents) and returns
// an ID that UnsubscribeFunc accepts.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextFuncID++
	id := eventType + "_func_" + strconv.Itoa(eb.nextFuncID)
	eb.handlers = append(eb.handlers, funcHandler{id: id, eventType: eventType, fn: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", id).
		Msg("Function handler added to event bus")
	return id
}

// UnsubscribeFunc removes a handler by ID and reports whether it existed.
func (eb *EventBus) UnsubscribeFunc(handlerID string) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, h := range eb.handlers {
		if h.id == handlerID {
			eb.handlers = append(eb.handlers[:i:i], eb.handlers[i+1:]...)
			return true
		}
	}
	return false
}

func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	// Copy under the lock; deliver without it.
	eb.mu.RLock()
	subs := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			subs = append(subs, s)
		}
	}
	handlers := make([]funcHandler, 0, len(eb.handlers))
	for _, h := range eb.handlers {
		if h.matches(eventType) {
			handlers = append(handlers, h)
		}
	}
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("match_id", event.MatchID()).
		Int("receivers", len(subs)+len(handlers)).
		Msg("Publishing event")

	for _, s := range subs {
		eb.deliver(event, s.ID(), func() { s.HandleEvent(event) })
	}
	for _, h := range handlers {
		eb.deliver(event, h.id, func() { h.fn(event) })
	}
}

func (eb *EventBus) deliver(event Event, receiver string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", event.Type()).
				Str("match_id", event.MatchID()).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	fn()
}

func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// FuncHandlerCount counts the handlers that would receive eventType,
// including AllEvents handlers.
func (eb *EventBus) FuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	n := 0
	for _, h := range eb.handlers {
		if h.matches(eventType) {
			n++
		}
	}
	return n
}
