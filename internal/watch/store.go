// Package watch provides a small observable state container. One store is
// created per active session and owned by the invoking layer; subscribers are
// notified after every mutation.
package watch

import "sync"

// Store holds a value of type T and notifies subscribers when it changes.
type Store[T any] struct {
	mu          sync.Mutex
	value       T
	subscribers map[int]func(T)
	nextID      int
}

// NewStore creates a store with the given initial value.
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		value:       initial,
		subscribers: make(map[int]func(T)),
	}
}

// Snapshot returns the current value.
func (s *Store[T]) Snapshot() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value and notifies all subscribers.
func (s *Store[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	subscribers := make([]func(T), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(value)
	}
}

// Update applies fn to the current value, stores the result and notifies
// subscribers.
func (s *Store[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	value := s.value
	subscribers := make([]func(T), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subscribers = append(subscribers, sub)
	}
	s.mu.Unlock()

	for _, sub := range subscribers {
		sub(value)
	}
}

// Subscribe registers fn to be called after every mutation. The returned
// function removes the subscription.
func (s *Store[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}
