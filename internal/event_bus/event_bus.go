package event_bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// EventType is an identifier for events.
type EventType string

// Event is the envelope carried by the bus. Data is kept as any so different
// payload types can share one bus.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEvent creates an Event stamped with the current time.
func NewEvent(ctx context.Context, eventType EventType, data any) Event {
	return Event{
		ctx:       ctx,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

// Context returns the context the event was published under. Handlers should
// use it for cancellation and request-scoped values.
func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventBus is a concurrency-safe synchronous dispatcher: handlers run
// sequentially inside Publish.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]func(Event) error
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[EventType][]func(Event) error),
	}
}

// Subscribe registers a handler for the given event type.
func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], h)
}

// Publish dispatches the event to all handlers registered for its type, in
// registration order. Handler errors are logged and collected; publishing
// continues past them.
func (eb *EventBus) Publish(e Event) error {
	if err := e.Context().Err(); err != nil {
		return fmt.Errorf("event %s: context cancelled before publish: %w", e.Type, err)
	}

	eb.mu.RLock()
	handlers := make([]func(Event) error, len(eb.subscribers[e.Type]))
	copy(handlers, eb.subscribers[e.Type])
	eb.mu.RUnlock()

	var failed int
	for _, h := range handlers {
		if err := e.Context().Err(); err != nil {
			return fmt.Errorf("event %s: context cancelled during processing: %w", e.Type, err)
		}
		if err := h(e); err != nil {
			log.Errorf("EventBus: handler error for event %s: %v", e.Type, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("event %s: %d handler(s) failed", e.Type, failed)
	}
	return nil
}
