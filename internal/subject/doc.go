// Package subject provides a minimal behavior subject: a hot observable that
// remembers the last value pushed through it.
//
// # Overview
//
// The binding layer never lets UI consumers subscribe to a store directly.
// Instead each store attachment owns one Subject, fed by a single store
// listener, and every consumer subscribes to that Subject. Replacing the store
// then only means swapping the Subject consumers listen to.
//
// # Semantics
//
//   - Next is synchronous: it returns after every listener ran, or after the
//     first listener returned an error.
//   - Next iterates the listener list as it was when Next was called, so a
//     listener may subscribe or unsubscribe others while being notified.
//   - A comparable listener (typically a pointer) is registered at most once.
//     Subscribing it again returns (nil, false).
//   - ListenerFunc values cannot be compared; each Subscribe registers them anew.
//   - The removal closure is idempotent.
//
// # Usage
//
//	s := subject.New(0)
//	unsubscribe, _ := s.Subscribe(subject.ListenerFunc[int](func(v int) error {
//		fmt.Println("got", v)
//		return nil
//	}))
//	defer unsubscribe()
//	_ = s.Next(1)
package subject
