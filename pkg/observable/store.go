package observable

import "sync"

// subscriber is a registered callback with a stable identity for removal.
type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// delivery is a value waiting to be passed to subs.
type delivery[T any] struct {
	value T
	subs  []subscriber[T]
}

// Store is an observable value container.
type Store[T any] struct {
	// value is the current value.
	value T

	// subs are the registered callbacks in registration order.
	subs []subscriber[T]

	// nextSub is the id handed to the next subscriber.
	nextSub uint64

	// queue holds writes not yet delivered, oldest first.
	queue []delivery[T]

	// delivering is set while some goroutine drains queue.
	delivering bool

	// mu protects every field above and equal.
	mu sync.RWMutex

	// equal reports whether a write left the value unchanged.
	// If nil, every write notifies.
	equal func(T, T) bool
}

// New creates a store holding initial.
func New[T any](initial T) *Store[T] {
	return &Store[T]{value: initial}
}

// WithEquals configures an equality function. Writes that produce a value
// equal to the current one do not notify subscribers.
func (s *Store[T]) WithEquals(fn func(T, T) bool) *Store[T] {
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
	return s
}

// Get returns the current value.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	s.write(value)
	s.mu.Unlock()

	s.flush()
}

// Update atomically derives the next value from the current one.
// fn runs with the store locked and must not call back into the store.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.write(fn(s.value))
	s.mu.Unlock()

	s.flush()
}

// write stores value and queues it for the current subscribers.
// The caller holds mu.
func (s *Store[T]) write(value T) {
	if s.equal != nil && s.equal(s.value, value) {
		return
	}
	s.value = value
	if len(s.subs) == 0 {
		return
	}
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.queue = append(s.queue, delivery[T]{value: value, subs: subs})
}

// Subscribe registers fn and calls it with the current value before any
// later write. The returned function removes the subscription; calling it
// more than once is harmless.
func (s *Store[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextSub++
	sub := subscriber[T]{id: s.nextSub, fn: fn}
	s.subs = append(s.subs, sub)
	s.queue = append(s.queue, delivery[T]{value: s.value, subs: []subscriber[T]{sub}})
	s.mu.Unlock()

	s.flush()

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(sub.id) })
	}
}

// Subscribers returns the number of registered callbacks.
func (s *Store[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store[T]) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// flush delivers queued values in order. Only one goroutine drains the
// queue at a time; the others return and leave their writes to it.
func (s *Store[T]) flush() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	s.mu.Unlock()

	// Release delivery if a callback panics.
	drained := false
	defer func() {
		if !drained {
			s.mu.Lock()
			s.delivering = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.queue = nil
			s.delivering = false
			drained = true
			s.mu.Unlock()
			return
		}
		d := s.queue[0]
		s.queue[0] = delivery[T]{}
		s.queue = s.queue[1:]
		s.mu.Unlock()

		for _, sub := range d.subs {
			sub.fn(d.value)
		}
	}
}
