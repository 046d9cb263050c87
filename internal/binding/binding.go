package binding

// BindingOption configures a Binding.
type BindingOption[R any] func(*bindingConfig[R])

type bindingConfig[R any] struct {
	equal EqualityFunc[R]
}

// WithEquality sets the comparator deciding whether a recomputed selection
// needs a refresh. Defaults to ShallowEqual.
func WithEquality[R any](eq EqualityFunc[R]) BindingOption[R] {
	return func(c *bindingConfig[R]) {
		if eq != nil {
			c.equal = eq
		}
	}
}

// Binding connects one consumer to a Context through a selector. It caches the
// last selected value and asks the consumer to refresh only when a
// notification produces a value that differs under the equality function.
//
// A Binding is not safe for concurrent use; it lives on the goroutine that
// renders its consumer and dispatches to the store.
type Binding[S, R any] struct {
	refresh func()
	equal   EqualityFunc[R]

	ctx         *Context[S]
	unsubscribe func()

	latestSelector *Selector[S, R]
	latestSelected R
	latestErr      error
}

// NewBinding returns an unmounted Binding. refresh is called whenever the
// consumer should evaluate again; it may be nil.
func NewBinding[S, R any](refresh func(), opts ...BindingOption[R]) *Binding[S, R] {
	cfg := bindingConfig[R]{equal: ShallowEqual[R]}
	for _, opt := range opts {
		opt(&cfg)
	}
	if refresh == nil {
		refresh = func() {}
	}
	return &Binding[S, R]{refresh: refresh, equal: cfg.equal}
}

// Mount subscribes the binding to ctx's subject. Mounting on the context it
// is already subscribed to is a no-op. Any other mount starts from an empty
// cache, so a binding that was unmounted or moved to another context never
// serves a selection it made before.
func (b *Binding[S, R]) Mount(ctx *Context[S]) {
	if ctx == nil {
		return
	}
	if b.ctx == ctx && b.unsubscribe != nil {
		return
	}
	b.Unmount()
	b.ctx = ctx
	unsubscribe, ok := ctx.Subject.Subscribe(b)
	if ok {
		b.unsubscribe = unsubscribe
	}
}

// Unmount unsubscribes from the current subject and drops the cached
// selection and any pending error. Safe to call more than once.
func (b *Binding[S, R]) Unmount() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	b.ctx = nil
	b.latestSelector = nil
	b.latestErr = nil
	var zero R
	b.latestSelected = zero
}

// Mounted reports whether the binding is subscribed to a subject.
func (b *Binding[S, R]) Mounted() bool {
	return b.unsubscribe != nil
}

// Pending returns the selector error recorded by the last notification, if it
// has not been surfaced by Evaluate yet.
func (b *Binding[S, R]) Pending() error {
	return b.latestErr
}

// Evaluate returns the selection for the current render. The selector runs
// when it differs from the last committed one or when a notification left an
// error behind; otherwise the cached value is returned untouched. A failure
// while an earlier error is pending comes back as a *SelectorError carrying
// both. A successful evaluation commits: the pending error is cleared and
// selector and value become the new cache.
//
// When ctx is not the context the binding is mounted on, the selector always
// runs against ctx and the cache is left alone.
func (b *Binding[S, R]) Evaluate(ctx *Context[S], sel *Selector[S, R]) (R, error) {
	var zero R
	if ctx == nil {
		return zero, ErrNoContext
	}
	if sel == nil {
		return zero, ErrNilSelector
	}
	if ctx != b.ctx {
		return selectFrom(ctx, sel)
	}

	selected := b.latestSelected
	if sel != b.latestSelector || b.latestErr != nil {
		var err error
		selected, err = selectFrom(ctx, sel)
		if err != nil {
			if b.latestErr != nil {
				err = &SelectorError{Err: err, Previous: b.latestErr}
			}
			return zero, err
		}
	}

	b.latestErr = nil
	b.latestSelector = sel
	b.latestSelected = selected
	return selected, nil
}

func selectFrom[S, R any](ctx *Context[S], sel *Selector[S, R]) (R, error) {
	current, err := ctx.Store.GetState()
	if err != nil {
		var zero R
		return zero, err
	}
	return sel.Apply(current)
}

// Notify is the subject listener. It re-runs the last committed selector and
// requests a refresh when the result changed or the selector failed. Failures
// are kept for the next Evaluate instead of being returned here.
func (b *Binding[S, R]) Notify(S) error {
	if b.ctx == nil || b.latestSelector == nil {
		return nil
	}

	current, err := b.ctx.Store.GetState()
	if err == nil {
		var selected R
		selected, err = b.latestSelector.Apply(current)
		if err == nil {
			if b.equal(selected, b.latestSelected) {
				return nil
			}
			b.latestSelected = selected
		}
	}
	if err != nil {
		b.latestErr = err
	}

	b.refresh()
	return nil
}
