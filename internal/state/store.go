package state

import (
	"fmt"
	"sync"
)

// Listener runs after every successful dispatch. Returning an error stops the
// remaining notifications of that dispatch.
type Listener func() error

// Unsubscribe removes a listener registration.
type Unsubscribe func() error

// Reducer computes the next state from the current one and a payload.
type Reducer[S any] func(state, payload S) (S, error)

// Option configures a Store.
type Option[S any] func(*Store[S])

// WithReducer replaces the default shallow-merge reducer.
//
// Merge skips zero-valued fields of a struct payload, so a struct store using
// the default reducer cannot reset a field to its zero value ("", 0, false,
// nil). Stores that need that should pass a reducer that replaces or applies
// explicit updates instead.
func WithReducer[S any](r Reducer[S]) Option[S] {
	return func(s *Store[S]) {
		if r != nil {
			s.reducer = r
		}
	}
}

type registration struct {
	id uint64
	fn Listener
}

// Store holds the canonical state and notifies listeners after each dispatch.
//
// A Store is meant to be driven from one goroutine. The mutex only keeps reads
// from other goroutines race-free and is never held while a reducer or listener
// runs.
type Store[S any] struct {
	mu          sync.Mutex
	state       S
	reducer     Reducer[S]
	current     []registration
	next        []registration
	aliased     bool
	dispatching bool
	lastID      uint64
}

// New creates a Store seeded with preloaded. Without WithReducer the store
// shallow-merges payloads into the state (see Merge).
func New[S any](preloaded S, opts ...Option[S]) *Store[S] {
	s := &Store[S]{
		state:   preloaded,
		reducer: Merge[S],
		aliased: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current state. It fails with ErrReentrantRead while a
// reducer is running.
func (s *Store[S]) GetState() (S, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dispatching {
		var zero S
		return zero, ErrReentrantRead
	}
	return s.state, nil
}

// Subscribe registers fn to run after every dispatch. A listener added while a
// dispatch is notifying is first called by the next dispatch. Each call creates
// a separate registration, even for the same function.
func (s *Store[S]) Subscribe(fn Listener) Unsubscribe {
	if fn == nil {
		return func() error { return nil }
	}

	s.mu.Lock()
	s.lastID++
	id := s.lastID
	s.ensureCanMutateNext()
	s.next = append(s.next, registration{id: id, fn: fn})
	s.mu.Unlock()

	subscribed := true
	return func() error {
		s.mu.Lock()
		defer s.mu.Unlock()

		if !subscribed {
			return nil
		}
		if s.dispatching {
			return ErrListenersLocked
		}
		subscribed = false

		s.ensureCanMutateNext()
		for i, r := range s.next {
			if r.id == id {
				s.next = append(s.next[:i], s.next[i+1:]...)
				break
			}
		}
		return nil
	}
}

// Dispatch runs the reducer over payload, then calls every listener registered
// before the notification pass started. It returns payload unchanged.
//
// Dispatch fails with ErrReentrantDispatch when called from inside a reducer.
// A reducer error leaves the state untouched and notifies nobody. The first
// listener error aborts the pass.
func (s *Store[S]) Dispatch(payload S) (S, error) {
	if err := s.reduce(payload); err != nil {
		var zero S
		return zero, err
	}

	s.mu.Lock()
	s.current = s.next
	s.aliased = true
	listeners := s.current
	s.mu.Unlock()

	for _, r := range listeners {
		if err := r.fn(); err != nil {
			return payload, fmt.Errorf("notify listener %d: %w", r.id, err)
		}
	}
	return payload, nil
}

// Listeners reports how many registrations the next dispatch will notify.
func (s *Store[S]) Listeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.next)
}

func (s *Store[S]) reduce(payload S) error {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return ErrReentrantDispatch
	}
	s.dispatching = true
	prev := s.state
	reducer := s.reducer
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.dispatching = false
		s.mu.Unlock()
	}()

	next, err := reducer(prev, payload)
	if err != nil {
		return fmt.Errorf("reduce: %w", err)
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

// ensureCanMutateNext gives next its own backing array before the first edit
// after a dispatch froze it as the notification snapshot. Callers hold s.mu.
func (s *Store[S]) ensureCanMutateNext() {
	if !s.aliased {
		return
	}
	dup := make([]registration, len(s.next))
	copy(dup, s.next)
	s.next = dup
	s.aliased = false
}
