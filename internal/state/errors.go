package state

import "errors"

// Protocol misuse errors. They are returned to the offending call and never
// retried or recovered internally.
var (
	// ErrReentrantRead is returned by GetState while a reducer is running.
	// Reducers receive the state as an argument and must not read it back.
	ErrReentrantRead = errors.New("state: GetState called while the reducer is running")

	// ErrReentrantDispatch is returned by Dispatch while a reducer is running.
	ErrReentrantDispatch = errors.New("state: Dispatch called while the reducer is running")

	// ErrListenersLocked is returned by an Unsubscribe while a reducer is running.
	ErrListenersLocked = errors.New("state: listeners are locked while the reducer is running")
)
