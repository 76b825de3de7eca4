package events

import (
	"context"
	"sync"

	"caseodds/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the pipeline
type EventType string

const (
	EventTypeCacheHit            EventType = "cache_hit"
	EventTypeCacheRefreshed      EventType = "cache_refreshed"
	EventTypeNameCollision       EventType = "name_collision"
	EventTypeSimulationCompleted EventType = "simulation_completed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CacheHitEvent is emitted when a cached file was fresh enough to reuse
type CacheHitEvent struct {
	CacheName string
	Path      string
}

func (e CacheHitEvent) Type() EventType {
	return EventTypeCacheHit
}

// CacheRefreshedEvent is emitted after a file was downloaded and stored
type CacheRefreshedEvent struct {
	CacheName string
	Path      string
	URL       string
	Bytes     int
}

func (e CacheRefreshedEvent) Type() EventType {
	return EventTypeCacheRefreshed
}

// NameCollisionEvent is emitted when distinct item names sanitize to the same name
type NameCollisionEvent struct {
	Collision models.NameCollision
}

func (e NameCollisionEvent) Type() EventType {
	return EventTypeNameCollision
}

// SimulationCompletedEvent is emitted once the report has been written
type SimulationCompletedEvent struct {
	Report      *models.Report
	ResultsPath string
	ChartPath   string // empty when no chart was rendered
}

func (e SimulationCompletedEvent) Type() EventType {
	return EventTypeSimulationCompleted
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit delivers an event to all registered handlers in subscription order.
// Handlers run on the caller's goroutine; a panicking handler is logged and
// does not stop the remaining handlers.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	for i, handler := range handlers {
		b.dispatch(ctx, event, handler, i)
	}
}

func (b *Bus) dispatch(ctx context.Context, event Event, h Handler, handlerIndex int) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{
				"eventType":    event.Type(),
				"handlerIndex": handlerIndex,
				"panic":        r,
			}).Error("Event handler panicked")
		}
	}()
	h(ctx, event)
}
