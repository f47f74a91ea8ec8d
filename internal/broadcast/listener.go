package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// ListenerRegistry holds callback observers for the legacy front-end.
// Callbacks run synchronously on the publisher's goroutine, so they must
// return quickly and must not call back into the publisher.
type ListenerRegistry[T any] struct {
	mu        sync.Mutex
	listeners map[string]func(T)
}

// NewListenerRegistry creates an empty registry
func NewListenerRegistry[T any]() *ListenerRegistry[T] {
	return &ListenerRegistry[T]{listeners: make(map[string]func(T))}
}

// Add registers fn and returns a removal function. Removing twice is harmless.
func (r *ListenerRegistry[T]) Add(fn func(T)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	r.listeners[id] = fn

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

// Notify invokes every registered listener with v
func (r *ListenerRegistry[T]) Notify(v T) {
	r.mu.Lock()
	fns := make([]func(T), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Clear removes every registered listener
func (r *ListenerRegistry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = make(map[string]func(T))
}

// Len returns the number of registered listeners
func (r *ListenerRegistry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
