package events

import (
	"context"
	"sync"
)

// EventHandler reacts to one store-change event.
type EventHandler func(context.Context, Event) error

// Dispatcher is the publish/subscribe contract between the stores and
// their consumers: stores publish after commit, presentation layers and
// the audit worker subscribe.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// inMemoryDispatcher delivers events synchronously on the publisher's
// goroutine.
type inMemoryDispatcher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		subscribers: make(map[EventType][]EventHandler),
	}
}

// Publish invokes every handler registered for the event's type. A
// failing subscriber does not stop delivery to the remaining ones.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := append([]EventHandler{}, d.subscribers[event.Type]...)
	d.mu.RUnlock()

	for _, handler := range handlers {
		// subscriber errors never interrupt delivery
		_ = handler(ctx, event)
	}
	return nil
}

// Subscribe registers a handler for the given event type.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[eventType] = append(d.subscribers[eventType], handler)
}
