package broadcast

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Subscription is the handle returned by Stream.Subscribe.
// The subscriber owns it and releases the callback with Unsubscribe.
type Subscription struct {
	id     string
	active atomic.Bool
	once   sync.Once
	remove func()
}

// ID returns the unique identifier of the subscription.
func (s *Subscription) ID() string {
	return s.id
}

// Active reports whether the subscription still receives events.
func (s *Subscription) Active() bool {
	return s.active.Load()
}

// Unsubscribe stops delivery to the callback. It is idempotent and safe to call
// from inside a callback or concurrently with an Emit in progress.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.active.Store(false)
		if s.remove != nil {
			s.remove()
		}
	})
}

type listener[T any] struct {
	sub *Subscription
	fn  func(T)
}

// Stream delivers events of type T to subscribed callbacks.
// Callbacks run synchronously, in subscription order, on the goroutine calling Emit.
// The zero value is ready to use and all methods are safe for concurrent use.
type Stream[T any] struct {
	mu        sync.Mutex
	listeners []listener[T]
}

// NewStream creates an empty stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{}
}

// Subscribe registers fn and returns its handle.
// A nil fn yields a subscription that is already inactive.
func (s *Stream[T]) Subscribe(fn func(T)) *Subscription {
	sub := &Subscription{id: uuid.NewString()}
	if fn == nil {
		sub.once.Do(func() {})
		return sub
	}

	sub.active.Store(true)
	sub.remove = func() { s.remove(sub) }

	s.mu.Lock()
	s.listeners = append(s.listeners, listener[T]{sub: sub, fn: fn})
	s.mu.Unlock()

	return sub
}

// Emit delivers v to every active subscriber and returns how many callbacks ran.
// The subscriber list is snapshotted first, so callbacks may subscribe or unsubscribe
// freely; a subscription removed during dispatch is skipped if it has not been reached yet.
func (s *Stream[T]) Emit(v T) int {
	s.mu.Lock()
	snapshot := s.listeners
	s.mu.Unlock()

	delivered := 0
	for _, l := range snapshot {
		if !l.sub.Active() {
			continue
		}
		l.fn(v)
		delivered++
	}
	return delivered
}

// Len returns the number of active subscriptions.
func (s *Stream[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Close unsubscribes every listener.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	snapshot := s.listeners
	s.mu.Unlock()

	for _, l := range snapshot {
		l.sub.Unsubscribe()
	}
}

// remove rebuilds the listener slice instead of editing it in place:
// snapshots taken by Emit keep their own view.
func (s *Stream[T]) remove(sub *Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.listeners, func(l listener[T]) bool { return l.sub == sub })
	if idx < 0 {
		return
	}

	next := make([]listener[T], 0, len(s.listeners)-1)
	next = append(next, s.listeners[:idx]...)
	next = append(next, s.listeners[idx+1:]...)
	s.listeners = next
}
