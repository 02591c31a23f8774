// Package event is a typed publish/subscribe bus for editor notifications.
package event

import (
	"reflect"
	"sync"
)

// Bus dispatches events synchronously to typed handlers. Publishing from a
// handler is allowed; registration is the only locked path.
type Bus struct {
	mu       sync.Mutex // protects handler registration only
	handlers map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[reflect.Type][]any)}
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Publish delivers event to every handler registered for T before returning.
func Publish[T any](b *Bus, event T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for _, h := range b.handlers[t] {
		h.(func(T))(event)
	}
}
