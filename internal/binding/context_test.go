package binding

import (
	"errors"
	"testing"

	"github.com/five82/statekit/internal/state"
	"github.com/five82/statekit/internal/subject"
)

type appState = map[string]any

func TestProvider_AttachBridgesStoreIntoSubject(t *testing.T) {
	store := state.New(appState{"count": 0})
	p := NewProvider[appState]()

	ctx, err := p.Attach(store)
	if err != nil {
		t.Fatalf("Attach returned error: %v", err)
	}
	if ctx.ID == "" {
		t.Fatal("context ID is empty")
	}
	if v, ok := ctx.Subject.Value(); !ok || v["count"] != 0 {
		t.Fatalf("subject seeded with %v, want count=0", v)
	}

	var pushed []appState
	_, _ = ctx.Subject.Subscribe(subject.ListenerFunc[appState](func(v appState) error {
		pushed = append(pushed, v)
		return nil
	}))

	_, _ = store.Dispatch(appState{"count": 1})
	if len(pushed) != 1 || pushed[0]["count"] != 1 {
		t.Fatalf("subject received %v, want one value with count=1", pushed)
	}
}

func TestProvider_AttachIsMemoizedPerStore(t *testing.T) {
	store := state.New(appState{})
	p := NewProvider[appState]()

	first, _ := p.Attach(store)
	second, _ := p.Attach(store)
	if first != second {
		t.Fatal("Attach built a new context for the same store")
	}
	if store.Listeners() != 1 {
		t.Fatalf("store has %d listeners, want a single bridge", store.Listeners())
	}
}

func TestProvider_SwapTearsDownExactlyOnce(t *testing.T) {
	oldStore := state.New(appState{"v": 1})
	newStore := state.New(appState{"v": 2})
	p := NewProvider[appState]()

	oldCtx, _ := p.Attach(oldStore)
	newCtx, err := p.Attach(newStore)
	if err != nil {
		t.Fatalf("Attach(new) returned error: %v", err)
	}
	if newCtx == oldCtx {
		t.Fatal("store swap reused the old context")
	}
	if !oldCtx.Closed() {
		t.Fatal("old context not closed after swap")
	}
	if oldStore.Listeners() != 0 {
		t.Fatalf("old store still has %d listeners", oldStore.Listeners())
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if newStore.Listeners() != 0 {
		t.Fatalf("new store still has %d listeners after Close", newStore.Listeners())
	}
	if p.Context() != nil {
		t.Fatal("Context() should be nil after Close")
	}
}

func TestProvider_CommitEmitsCatchUpOnce(t *testing.T) {
	store := state.New(appState{"v": 1})
	p := NewProvider[appState]()
	ctx, _ := p.Attach(store)

	// Move the store before the consumer subscribes: the bridge pushes the
	// value to nobody.
	_, _ = store.Dispatch(appState{"v": 2})

	var seen []any
	_, _ = ctx.Subject.Subscribe(subject.ListenerFunc[appState](func(v appState) error {
		seen = append(seen, v["v"])
		return nil
	}))

	if err := p.Commit(); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if err := p.Commit(); err != nil {
		t.Fatalf("second Commit returned error: %v", err)
	}
	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("catch-up values = %v, want [2]", seen)
	}
}

func TestProvider_CommitSkipsWhenStateUnchanged(t *testing.T) {
	store := state.New(appState{"v": 1})
	p := NewProvider[appState]()
	ctx, _ := p.Attach(store)

	calls := 0
	_, _ = ctx.Subject.Subscribe(subject.ListenerFunc[appState](func(appState) error {
		calls++
		return nil
	}))

	if err := p.Commit(); err != nil {
		t.Fatalf("Commit returned error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("Commit notified %d times for an unchanged state", calls)
	}
}

func TestProvider_CustomStateEquality(t *testing.T) {
	store := state.New(appState{"v": 1})
	p := NewProvider(WithStateEquality[appState](func(a, b appState) bool { return false }))
	ctx, _ := p.Attach(store)

	calls := 0
	_, _ = ctx.Subject.Subscribe(subject.ListenerFunc[appState](func(appState) error {
		calls++
		return nil
	}))
	_ = p.Commit()
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 with an always-different comparator", calls)
	}
}

func TestProvider_AttachNilStore(t *testing.T) {
	p := NewProvider[appState]()
	if _, err := p.Attach(nil); !errors.Is(err, ErrNilStore) {
		t.Fatalf("Attach(nil) error = %v, want ErrNilStore", err)
	}
}

func TestUseStoreAndDispatch(t *testing.T) {
	store := state.New(appState{"v": 1})
	p := NewProvider[appState]()
	ctx, _ := p.Attach(store)

	got, err := UseStore(ctx)
	if err != nil || got != store {
		t.Fatalf("UseStore = %p, %v; want the attached store", got, err)
	}

	dispatch, err := UseDispatch(ctx)
	if err != nil {
		t.Fatalf("UseDispatch returned error: %v", err)
	}
	if _, err := dispatch(appState{"v": 3}); err != nil {
		t.Fatalf("dispatch returned error: %v", err)
	}
	st, _ := store.GetState()
	if st["v"] != 3 {
		t.Fatalf("state v = %v, want 3", st["v"])
	}

	if _, err := UseStore[appState](nil); !errors.Is(err, ErrNoContext) {
		t.Fatalf("UseStore(nil) error = %v, want ErrNoContext", err)
	}
	if _, err := UseDispatch[appState](nil); !errors.Is(err, ErrNoContext) {
		t.Fatalf("UseDispatch(nil) error = %v, want ErrNoContext", err)
	}
}
