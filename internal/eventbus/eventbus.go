// Package eventbus is the callback fan-out the Client facade uses to
// deliver state updates, log lines, and connection-state changes to
// however many subscribers register interest — an event bus rather than a
// handler-interface hierarchy, per the design note in spec.md §9. The
// teacher has no pub/sub library dependency anywhere in its own go.mod
// (internal/peer.Manager's SetFrameCallback is a plain callback field), so
// this stays a plain mutex-guarded callback slice rather than reaching for
// an ecosystem pub/sub package.
package eventbus

import (
	"sort"
	"sync"
)

// Bus fans one event type out to every subscriber, in registration order.
type Bus[T any] struct {
	mu   sync.Mutex
	subs map[int]func(T)
	next int
}

// New constructs an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers event to every current subscriber, synchronously, on
// the calling goroutine. Subscribers that need to avoid blocking the
// connection's read loop should hand off to their own goroutine.
func (b *Bus[T]) Publish(event T) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(T), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}

// Once registers fn to receive exactly the next published event: the
// subscription removes itself before fn runs, so fn never fires twice —
// the "once unregisters after first delivery" contract.
func (b *Bus[T]) Once(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	var fired sync.Once
	b.subs[id] = func(e T) {
		fired.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			fn(e)
		})
	}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Len reports the current subscriber count, mainly for tests.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
