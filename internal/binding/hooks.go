package binding

import "github.com/five82/statekit/internal/state"

// DispatchFunc sends a payload to a store.
type DispatchFunc[S any] func(payload S) (S, error)

// UseStore returns the store behind ctx.
func UseStore[S any](ctx *Context[S]) (*state.Store[S], error) {
	if ctx == nil {
		return nil, ErrNoContext
	}
	return ctx.Store, nil
}

// UseDispatch returns the dispatch function of the store behind ctx.
func UseDispatch[S any](ctx *Context[S]) (DispatchFunc[S], error) {
	store, err := UseStore(ctx)
	if err != nil {
		return nil, err
	}
	return store.Dispatch, nil
}

// UseSelector mounts b on ctx when it is not already subscribed there and
// returns the selection for this render.
func UseSelector[S, R any](b *Binding[S, R], ctx *Context[S], sel *Selector[S, R]) (R, error) {
	if ctx == nil {
		var zero R
		return zero, ErrNoContext
	}
	b.Mount(ctx)
	return b.Evaluate(ctx, sel)
}
