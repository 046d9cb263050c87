package binding

import "fmt"

// Selector derives a value of type R from state S. Bindings compare selectors
// by pointer: keep the same *Selector across evaluations to reuse the cached
// result, pass a new one to force recomputation.
type Selector[S, R any] struct {
	fn func(S) (R, error)
}

// Select wraps an infallible selector function.
func Select[S, R any](fn func(S) R) *Selector[S, R] {
	return &Selector[S, R]{fn: func(s S) (R, error) { return fn(s), nil }}
}

// SelectErr wraps a selector function that can fail.
func SelectErr[S, R any](fn func(S) (R, error)) *Selector[S, R] {
	return &Selector[S, R]{fn: fn}
}

// Apply runs the selector. A panic inside the selector function is returned as
// an error.
func (s *Selector[S, R]) Apply(state S) (result R, err error) {
	if s == nil || s.fn == nil {
		return result, ErrNilSelector
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector panicked: %v", r)
		}
	}()
	return s.fn(state)
}
