package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(raw any)

// Bus is a string-keyed publish/subscribe hub. Handlers run synchronously on
// the publishing goroutine, in subscription order, so simulation events are
// observed in the tick that produced them.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	if b == nil || handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *Bus) Publish(eventName string, evt any) {
	if b == nil {
		return
	}
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	b.mu.RUnlock()

	for _, handler := range handlers {
		dispatch(eventName, handler, evt)
	}
}

func dispatch(eventName string, h HandlerFunc, evt any) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "event", eventName, "panic", r)
		}
	}()
	h(evt)
}
