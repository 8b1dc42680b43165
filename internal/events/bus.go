package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Handler receives a published Event.
type Handler func(*Event)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	eventType Type
	id        uint64
}

// Bus is a process-local pub/sub used to decouple a solver run from
// whatever is watching it (REPL, report printer, HTTP stream, scheduler
// history). Handlers snapshot under a read lock and run outside it, so a
// slow subscriber never blocks a worker goroutine's Emit call.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Type]map[uint64]Handler
	nextID      uint64
	log         zerolog.Logger
}

// NewBus builds an empty Bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[Type]map[uint64]Handler),
		log:         log.With().Str("component", "events").Logger(),
	}
}

// Subscribe registers handler for eventType and returns a token for Unsubscribe.
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	if _, ok := b.subscribers[eventType]; !ok {
		b.subscribers[eventType] = make(map[uint64]Handler)
	}
	b.subscribers[eventType][id] = handler
	return Subscription{eventType: eventType, id: id}
}

// Unsubscribe removes a previously registered handler. Safe to call more
// than once or with a zero-value Subscription.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if handlers, ok := b.subscribers[sub.eventType]; ok {
		delete(handlers, sub.id)
		if len(handlers) == 0 {
			delete(b.subscribers, sub.eventType)
		}
	}
}

// Emit publishes an event to every subscriber of eventType, asynchronously.
func (b *Bus) Emit(eventType Type, runID string, data map[string]any) {
	event := &Event{Type: eventType, Timestamp: time.Now(), RunID: runID, Data: data}

	b.mu.RLock()
	registered := b.subscribers[eventType]
	handlers := make([]Handler, 0, len(registered))
	for _, h := range registered {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		go h(event)
	}

	b.log.Debug().Str("event_type", string(eventType)).Str("run_id", runID).
		Int("subscribers", len(handlers)).Msg("event emitted")
}
