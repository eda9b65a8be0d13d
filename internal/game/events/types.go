package events

import (
	"time"
)

// Event is the base interface for all match events
type Event interface {
	// Type returns the event type used for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// MatchID returns the ID of the match this event belongs to
	MatchID() string
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Match     string    `json:"match_id"`
}

func newBase(eventType, matchID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Match: matchID}
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

func (e BaseEvent) MatchID() string {
	return e.Match
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber represents an entity that can receive events
type Subscriber interface {
	// ID returns a unique identifier for this subscriber
	ID() string
	// HandleEvent processes an event
	HandleEvent(Event)
	// InterestedIn reports whether the subscriber wants events of this type
	InterestedIn(eventType string) bool
}

// Publisher is the interface for publishing events
type Publisher interface {
	Publish(Event)
}

// Bus is the main event bus interface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	// SubscribeFunc registers handler for one event type and returns its handler ID
	SubscribeFunc(eventType string, handler EventHandler) string
	UnsubscribeFunc(handlerID string) bool
}
