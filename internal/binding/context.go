package binding

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/five82/statekit/internal/state"
	"github.com/five82/statekit/internal/subject"
)

// Context is what a Provider hands to its consumers: the store, the subject
// that mirrors it and the teardown for the bridge between the two.
type Context[S any] struct {
	// ID identifies this attachment in logs and debug output.
	ID      string
	Store   *state.Store[S]
	Subject *subject.Subject[S]

	unsubscribe state.Unsubscribe
	initial     S
	caughtUp    bool
	closed      bool
}

func newContext[S any](store *state.Store[S]) (*Context[S], error) {
	initial, err := store.GetState()
	if err != nil {
		return nil, fmt.Errorf("read initial state: %w", err)
	}

	sub := subject.New(initial)
	ctx := &Context[S]{
		ID:      uuid.NewString(),
		Store:   store,
		Subject: sub,
		initial: initial,
	}
	ctx.unsubscribe = store.Subscribe(func() error {
		current, err := store.GetState()
		if err != nil {
			return err
		}
		return sub.Next(current)
	})
	return ctx, nil
}

// Closed reports whether the bridge listener was detached.
func (c *Context[S]) Closed() bool {
	return c.closed
}

// close detaches the bridge listener. Only the first successful call has an
// effect.
func (c *Context[S]) close() error {
	if c.closed {
		return nil
	}
	if err := c.unsubscribe(); err != nil {
		return fmt.Errorf("detach context %s: %w", c.ID, err)
	}
	c.closed = true
	return nil
}

// ProviderOption configures a Provider.
type ProviderOption[S any] func(*Provider[S])

// WithStateEquality sets how the Provider decides whether the state moved
// between attaching a store and committing. Defaults to ShallowEqual.
func WithStateEquality[S any](eq EqualityFunc[S]) ProviderOption[S] {
	return func(p *Provider[S]) {
		if eq != nil {
			p.equal = eq
		}
	}
}

// WithLogger sets the logger used for attach and teardown events.
func WithLogger[S any](logger *slog.Logger) ProviderOption[S] {
	return func(p *Provider[S]) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Provider attaches a store to a consumer tree. It keeps one Context per store
// identity and rebuilds it only when a different store is attached.
type Provider[S any] struct {
	ctx    *Context[S]
	equal  EqualityFunc[S]
	logger *slog.Logger
}

// NewProvider returns a Provider with no store attached.
func NewProvider[S any](opts ...ProviderOption[S]) *Provider[S] {
	p := &Provider[S]{
		equal:  ShallowEqual[S],
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach returns the Context for store, building it on first use. Attaching a
// different store tears down the previous Context first.
func (p *Provider[S]) Attach(store *state.Store[S]) (*Context[S], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if p.ctx != nil && p.ctx.Store == store {
		return p.ctx, nil
	}

	if p.ctx != nil {
		if err := p.teardown(); err != nil {
			return nil, err
		}
	}

	ctx, err := newContext(store)
	if err != nil {
		return nil, err
	}
	p.ctx = ctx
	p.logger.Debug("store attached", "context", ctx.ID)
	return ctx, nil
}

// Context returns the current Context, or nil before the first Attach.
func (p *Provider[S]) Context() *Context[S] {
	return p.ctx
}

// Commit runs after consumers have rendered against a fresh Context. If the
// state changed since the Context was built, one catch-up value is pushed
// through the subject. It has an effect at most once per Context.
func (p *Provider[S]) Commit() error {
	ctx := p.ctx
	if ctx == nil || ctx.caughtUp || ctx.closed {
		return nil
	}
	ctx.caughtUp = true

	current, err := ctx.Store.GetState()
	if err != nil {
		return fmt.Errorf("commit context %s: %w", ctx.ID, err)
	}
	if p.equal(current, ctx.initial) {
		return nil
	}
	p.logger.Debug("state moved before commit; notifying consumers", "context", ctx.ID)
	if err := ctx.Subject.Next(current); err != nil {
		return fmt.Errorf("catch-up notify: %w", err)
	}
	return nil
}

// Close tears down the current Context. Safe to call more than once.
func (p *Provider[S]) Close() error {
	if p.ctx == nil {
		return nil
	}
	return p.teardown()
}

func (p *Provider[S]) teardown() error {
	ctx := p.ctx
	if err := ctx.close(); err != nil {
		return err
	}
	p.ctx = nil
	p.logger.Debug("store detached", "context", ctx.ID)
	return nil
}
