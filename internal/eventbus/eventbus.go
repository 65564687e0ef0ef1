package eventbus

import (
	"context"
	"errors"
	"log"
	"runtime/debug"
	"sync"

	"moviespot/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchStarted        = domain.EventSearchStarted
	EventMovieFound           = domain.EventMovieFound
	EventSearchFailed         = domain.EventSearchFailed
	EventLocationStateChanged = domain.EventLocationStateChanged
	EventPermissionPrompt     = domain.EventPermissionPrompt
	EventLocationFixed        = domain.EventLocationFixed
	EventLocationFailed       = domain.EventLocationFailed
	EventConfigLoaded         = domain.EventConfigLoaded
	EventConfigSaved          = domain.EventConfigSaved
)

// Re-export domain event types
type SearchStartedEvent = domain.SearchStartedEvent
type MovieFoundEvent = domain.MovieFoundEvent
type SearchFailedEvent = domain.SearchFailedEvent
type LocationStateChangedEvent = domain.LocationStateChangedEvent
type PermissionPromptEvent = domain.PermissionPromptEvent
type LocationFixedEvent = domain.LocationFixedEvent
type LocationFailedEvent = domain.LocationFailedEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// ErrClosed is returned by PublishWait once the bus is closed
var ErrClosed = errors.New("event bus closed")

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	PublishWait(ctx context.Context, event DomainEvent) error
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event for all subscribers of its type
func (b *bus) Publish(event DomainEvent) {
	log.Printf("EventBus: Publishing event %s", event.Type())

	select {
	case b.eventChan <- event:
	case <-b.quit:
		log.Printf("EventBus: closed, dropping event %s", event.Type())
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// PublishWait queues an event, waiting for room instead of dropping it.
// Use it for events somebody is blocked on.
func (b *bus) PublishWait(ctx context.Context, event DomainEvent) error {
	log.Printf("EventBus: Publishing event %s (wait)", event.Type())

	select {
	case b.eventChan <- event:
		return nil
	case <-b.quit:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events still queued are discarded.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch delivers events in publish order. Handlers run on the dispatcher
// goroutine so a flow's transitions reach subscribers in sequence.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.call(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
