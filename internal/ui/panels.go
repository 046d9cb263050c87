package ui

import (
	"fmt"
	"slices"

	"github.com/five82/statekit/internal/binding"
	"github.com/five82/statekit/internal/model"
)

// Observer receives panel activity. It is called on the UI goroutine.
type Observer interface {
	Refreshed(panel string)
	SelectorFailed(panel string)
}

type nopObserver struct{}

func (nopObserver) Refreshed(string)      {}
func (nopObserver) SelectorFailed(string) {}

// Panel names, also used as metric labels.
const (
	panelHeader  = "header"
	panelCounter = "counter"
	panelMeter   = "meter"
	panelLogs    = "logs"
)

// meterWidth is the number of cells in the meter bar.
const meterWidth = 20

// panelStats counts what happened to one panel.
type panelStats struct {
	// Refreshes is how often the binding asked for a re-render.
	Refreshes int
	// Runs is how often the selector executed.
	Runs int
	// Renders is how often the panel was evaluated.
	Renders int
}

// panel is the type-erased view of a slot.
type panel interface {
	Name() string
	Stats() panelStats
	Err() error
	sync(ctx *binding.Context[model.State], retry bool) bool
	unmount()
}

// slot ties one panel to the store: a binding, a stable selector and the last
// value the panel rendered.
type slot[R any] struct {
	name     string
	observer Observer
	binding  *binding.Binding[model.State, R]
	selector *binding.Selector[model.State, R]

	ctx   *binding.Context[model.State]
	value R
	err   error
	dirty bool
	stats panelStats
}

func newSlot[R any](name string, obs Observer, fn func(model.State) (R, error), opts ...binding.BindingOption[R]) *slot[R] {
	s := &slot[R]{name: name, observer: obs}
	s.binding = binding.NewBinding[model.State, R](s.refresh, opts...)
	s.selector = binding.SelectErr(func(st model.State) (R, error) {
		s.stats.Runs++
		return fn(st)
	})
	return s
}

func (s *slot[R]) refresh() {
	s.dirty = true
	s.stats.Refreshes++
	s.observer.Refreshed(s.name)
}

func (s *slot[R]) Name() string      { return s.name }
func (s *slot[R]) Stats() panelStats { return s.stats }
func (s *slot[R]) Err() error        { return s.err }

// sync evaluates the slot when it has not rendered against ctx yet or was
// refreshed. With retry set, a slot holding a selector error is evaluated
// again as well. It reports whether an evaluation happened.
func (s *slot[R]) sync(ctx *binding.Context[model.State], retry bool) bool {
	failing := s.err != nil || s.binding.Pending() != nil
	if s.ctx == ctx && !s.dirty && !(retry && failing) {
		return false
	}
	s.dirty = false
	s.ctx = ctx
	s.stats.Renders++

	v, err := binding.UseSelector(s.binding, ctx, s.selector)
	if err != nil {
		s.err = err
		s.observer.SelectorFailed(s.name)
		return true
	}
	s.value = v
	s.err = nil
	return true
}

func (s *slot[R]) unmount() {
	s.binding.Unmount()
	s.ctx = nil
	s.dirty = false
}

// headerView is what the header panel needs from the state.
type headerView struct {
	Theme      string
	LogPath    string
	Poll       model.PollStatus
	RemoteKeys int
}

func selectHeader(st model.State) (headerView, error) {
	return headerView{
		Theme:      model.Theme(st),
		LogPath:    model.LogPath(st),
		Poll:       model.Poll(st),
		RemoteKeys: len(model.Remote(st)),
	}, nil
}

func selectCount(st model.State) (int, error) {
	return model.Count(st), nil
}

// selectMeter returns how many meter cells are filled. Counts past the end
// of the bar clamp, so they select the same value and skip the refresh.
func selectMeter(st model.State) (int, error) {
	n := model.Count(st)
	if n < 0 {
		return 0, fmt.Errorf("meter cannot show negative count %d", n)
	}
	return min(n, meterWidth), nil
}

func selectLogs(st model.State) ([]string, error) {
	return model.Logs(st), nil
}

// panels holds one slot per store-backed panel.
type panels struct {
	header  *slot[headerView]
	counter *slot[int]
	meter   *slot[int]
	logs    *slot[[]string]
}

func newPanels(obs Observer) panels {
	return panels{
		header:  newSlot(panelHeader, obs, selectHeader),
		counter: newSlot(panelCounter, obs, selectCount),
		meter:   newSlot(panelMeter, obs, selectMeter),
		logs: newSlot(panelLogs, obs, selectLogs,
			binding.WithEquality(slices.Equal[[]string])),
	}
}

func (p panels) all() []panel {
	return []panel{p.header, p.counter, p.meter, p.logs}
}
