// Package binding connects consumers (UI panels) to a state.Store.
//
// # Overview
//
// The package has two halves:
//
//   - Provider / Context: attaches a store to a consumer tree. Each attached
//     store gets one subject.Subject fed by a single store listener (the
//     bridge). Consumers only ever subscribe to that subject.
//   - Binding / Selector: per-consumer selection. A Binding caches the value
//     its selector derived and requests a refresh only when a notification
//     yields something different under its equality function.
//
// Every operation takes the Context explicitly; there is no ambient lookup.
//
// # Data Flow
//
//	store.Dispatch(payload)
//	  └─> bridge listener ──> subject.Next(state)
//	                            ├─> binding A.Notify ─ equal ─> (nothing)
//	                            └─> binding B.Notify ─ differs ─> refresh()
//	consumer B renders
//	  └─> UseSelector(B, ctx, sel) ─> cached value, no selector call
//
// # Render Cycle
//
// A host drives a consumer like this:
//
//	ctx, _ := provider.Attach(store)
//	value, err := binding.UseSelector(b, ctx, sel) // every render
//	_ = provider.Commit()                          // after the tree rendered
//	...
//	b.Unmount()                                     // consumer removed
//	_ = provider.Close()                            // tree removed
//
// Commit pushes one catch-up value when the store moved between Attach and
// the end of the first render, so consumers that subscribed late do not keep
// a stale selection.
//
// # Errors
//
// A selector failing inside Notify is not returned to the dispatcher. It is
// parked in the binding, a refresh is requested, and the next Evaluate runs
// the selector again. If that run fails too, the returned *SelectorError
// carries both diagnostics. A panicking selector counts as a failure.
//
// # Selector Identity
//
// Go functions are not comparable, so selectors are wrapped in a *Selector and
// compared by pointer. Build selectors once (package level or when the
// consumer is created) to get caching; build a new one to force a recompute.
package binding
