package events

import (
	"fmt"
	"sync"

	console "atlas/internal/utils/logger"
)

var log = console.New("EVENTS")

type EventHandler func(interface{})

// EventBus is a minimal in-process pub/sub used for lifecycle notifications
// (content rows created, uploads completed). Delivery is asynchronous and
// best-effort; handlers must not be relied on for correctness.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]EventHandler
}

var defaultBus = NewEventBus()

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[string][]EventHandler)}
}

// On registers a handler for an event.
func (bus *EventBus) On(event string, handler EventHandler) {
	bus.mu.Lock()
	bus.handlers[event] = append(bus.handlers[event], handler)
	bus.mu.Unlock()

	log.Info("Registered handler for event: %s", event)
}

// Emit triggers an event with the given data. Each handler runs in its own
// goroutine; a panicking handler is logged and contained.
func (bus *EventBus) Emit(event string, data interface{}) {
	bus.mu.RLock()
	handlers := make([]EventHandler, len(bus.handlers[event]))
	copy(handlers, bus.handlers[event])
	bus.mu.RUnlock()

	if len(handlers) == 0 {
		return
	}

	log.Info("Emitting event: %s", event)

	for _, handler := range handlers {
		h := handler
		go func() {
			defer func() {
				if r := recover(); r != nil {
					_ = log.Error("Panic in event handler", fmt.Errorf("panic: %v", r))
				}
			}()
			h(data)
		}()
	}
}

// On registers a handler on the default event bus.
func On(event string, handler EventHandler) {
	defaultBus.On(event, handler)
}

// Emit publishes on the default event bus.
func Emit(event string, data interface{}) {
	defaultBus.Emit(event, data)
}
