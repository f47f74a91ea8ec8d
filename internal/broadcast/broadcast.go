// Package broadcast provides the fan-out primitives shared by the monitor's
// two front-ends: channel-backed subscriptions for stream consumers and a
// callback registry for the legacy observer surface.
package broadcast

import (
	"sync"

	"github.com/google/uuid"
)

// DefaultBufferSize is the per-subscriber channel buffer. Emissions beyond
// the buffer displace the oldest pending value so a slow consumer can never
// block the publisher.
const DefaultBufferSize = 16

// Broadcaster fans values out to any number of independent subscribers.
// Each subscriber owns its channel; closing or abandoning one subscription
// never affects the others or the publisher.
type Broadcaster[T any] struct {
	mu      sync.Mutex
	subs    map[string]chan T
	bufSize int
}

// New creates a broadcaster with the given per-subscriber buffer size.
// Sizes below 1 fall back to DefaultBufferSize.
func New[T any](bufSize int) *Broadcaster[T] {
	if bufSize < 1 {
		bufSize = DefaultBufferSize
	}
	return &Broadcaster[T]{
		subs:    make(map[string]chan T),
		bufSize: bufSize,
	}
}

// Subscribe registers a new subscriber and returns its id and channel.
// The id is needed to unsubscribe.
func (b *Broadcaster[T]) Subscribe() (string, <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan T, b.bufSize)
	b.subs[id] = ch
	return id, ch
}

// SubscribeSeeded registers a new subscriber whose channel already holds the
// seed value. Used to satisfy the "current value first" stream contract
// without a forwarding goroutine.
func (b *Broadcaster[T]) SubscribeSeeded(seed T) (string, <-chan T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan T, b.bufSize)
	ch <- seed
	b.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel. Unknown ids are
// ignored so double-unsubscribe is harmless.
func (b *Broadcaster[T]) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers v to every current subscriber without blocking. When a
// subscriber's buffer is full the oldest pending value is dropped to make
// room, so late consumers observe the most recent emissions.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// CloseSubscribers closes every current subscriber channel, signalling
// end-of-stream. The broadcaster itself stays usable: new subscriptions made
// afterwards behave normally.
func (b *Broadcaster[T]) CloseSubscribers() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Broadcaster[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
