package subject

import (
	"reflect"
	"sync"
)

// Listener receives every value pushed through a Subject.
type Listener[T any] interface {
	Notify(value T) error
}

// ListenerFunc adapts a plain function to Listener. Function values are not
// comparable, so a ListenerFunc is never treated as a duplicate.
type ListenerFunc[T any] func(value T) error

// Notify calls f(value).
func (f ListenerFunc[T]) Notify(value T) error {
	return f(value)
}

// Subject is a minimal hot observable holding the last value it was given.
// New subscribers are not replayed the current value; they can read it through
// Value.
type Subject[T any] struct {
	mu        sync.Mutex
	value     T
	hasValue  bool
	listeners []entry[T]
	nextID    uint64
}

type entry[T any] struct {
	id uint64
	l  Listener[T]
}

// New returns a Subject seeded with initial.
func New[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial, hasValue: true}
}

// Empty returns a Subject with no current value.
func Empty[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Value returns the last value stored by New or Next.
func (s *Subject[T]) Value() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.hasValue
}

// Len reports how many listeners are registered.
func (s *Subject[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Next stores value and then calls every listener registered at the time of the
// call, in registration order. The first listener error stops the pass and is
// returned as is.
func (s *Subject[T]) Next(value T) error {
	s.mu.Lock()
	s.value = value
	s.hasValue = true
	listeners := make([]entry[T], len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, e := range listeners {
		if err := e.l.Notify(value); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers l. It returns false and a nil closure when l is nil or is
// already registered. The returned closure removes l and is safe to call more
// than once.
func (s *Subject[T]) Subscribe(l Listener[T]) (func(), bool) {
	if isNil(l) {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.listeners {
		if sameListener(e.l, l) {
			return nil, false
		}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, entry[T]{id: id, l: l})

	subscribed := true
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !subscribed {
			return
		}
		subscribed = false
		s.remove(id)
	}, true
}

func (s *Subject[T]) remove(id uint64) {
	for i, e := range s.listeners {
		if e.id == id {
			next := make([]entry[T], 0, len(s.listeners)-1)
			next = append(next, s.listeners[:i]...)
			s.listeners = append(next, s.listeners[i+1:]...)
			return
		}
	}
}

func sameListener[T any](a, b Listener[T]) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func isNil[T any](l Listener[T]) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Interface, reflect.Chan, reflect.Slice:
		return v.IsNil()
	}
	return false
}
