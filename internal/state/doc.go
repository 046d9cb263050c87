// Package state provides the canonical state container for statekit.
//
// # Overview
//
// A Store owns one value of the caller's state type, a reducer that turns
// (state, payload) into the next state, and an ordered list of listeners that
// run after every dispatch. The binding layer bridges these listeners into a
// behavior subject; UI consumers never subscribe to a Store directly.
//
// # Dispatch Protocol
//
//	Dispatch(payload)
//	  ├─> dispatching = true            (Idle → Dispatching)
//	  ├─> state = reducer(state, payload)
//	  ├─> dispatching = false           (always, even on reducer failure)
//	  ├─> current = next                (freeze the listener snapshot)
//	  └─> for each listener in current:  listener()
//
// While the reducer runs:
//   - GetState returns ErrReentrantRead
//   - Dispatch returns ErrReentrantDispatch
//   - any Unsubscribe returns ErrListenersLocked
//
// Listeners run after the lock is released, so a listener may read the state,
// subscribe, unsubscribe or dispatch again.
//
// # Listener Snapshots
//
// The listener list is double-buffered. current is the frozen snapshot the
// notification loop iterates; next collects subscribe/unsubscribe edits. The
// first edit after a dispatch copies next away from current, so the loop keeps
// iterating a stable slice:
//
//	dispatch D freezes [a b]
//	  a() subscribes c   → next = [a b c]   D still notifies [a b]
//	  a() unsubscribes b → next = [a c]     D still notifies b
//	dispatch D+1 freezes [a c]
//
// # Errors
//
// Protocol misuse returns one of the sentinel errors (check with errors.Is).
// A reducer error is wrapped and returned; the state is left untouched and no
// listener runs. A listener error stops the remaining notifications of that
// dispatch and is returned wrapped; listeners needing isolation must handle
// their own failures.
//
// # Default Reducer
//
// Without WithReducer, Dispatch merges the payload into the state one level
// deep (see Merge):
//
//	s := state.New(map[string]any{"a": 0, "b": 2})
//	s.Dispatch(map[string]any{"a": 1})
//	// state is now {a:1 b:2}
//
// Dispatch returns the payload it was given, not the new state.
package state
