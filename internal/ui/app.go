package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/statekit/internal/binding"
	"github.com/five82/statekit/internal/model"
	"github.com/five82/statekit/internal/prefs"
)

// Options configures the UI.
type Options struct {
	// Store is attached on startup. Required.
	Store *model.Store
	// NewStore builds the replacement store for the swap key. Defaults to
	// model.NewStore.
	NewStore func(logPath, theme string) *model.Store
	// OnAttach runs every time a store is attached, including swaps.
	OnAttach func(store *model.Store, contextID string) error
	// Observer receives refresh and selector failure events.
	Observer Observer
	// Prefs persists theme and layout changes. Nil disables saving.
	Prefs       *prefs.File
	Preferences prefs.Prefs
	Logger      *slog.Logger
}

// DispatchMsg asks the UI to dispatch Payload to the attached store. Other
// goroutines hand their updates to the program with it.
type DispatchMsg struct {
	Payload model.State
}

// Model is the root Bubble Tea model.
type Model struct {
	session *session
	prefs   *prefs.File
	logger  *slog.Logger

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	theme    Theme

	width     int
	height    int
	ready     bool
	follow    bool
	hideStats bool
	lastErr   error
}

// New attaches opts.Store and renders every panel once.
func New(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, binding.ErrNilStore
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopObserver{}
	}
	newStore := opts.NewStore
	if newStore == nil {
		newStore = model.NewStore
	}

	s := &session{
		provider: binding.NewProvider(binding.WithLogger[model.State](logger)),
		panels:   newPanels(obs),
		newStore: newStore,
		onAttach: opts.OnAttach,
		logger:   logger,
	}
	if err := s.attach(opts.Store); err != nil {
		return Model{}, err
	}
	if err := s.sync(); err != nil {
		return Model{}, fmt.Errorf("initial render: %w", err)
	}

	m := Model{
		session:   s,
		prefs:     opts.Prefs,
		logger:    logger,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		viewport:  viewport.New(0, 0),
		follow:    true,
		hideStats: opts.Preferences.HideStats,
	}
	m.applyTheme()
	m.refreshLogs()
	return m, nil
}

// Close detaches the panels and the provider from the store.
func (m Model) Close() error {
	return m.session.close()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		m.handleKey(msg)

	case DispatchMsg:
		m.setErr(m.session.dispatch(msg.Payload))
	}

	m.render()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	m.lastErr = nil
	switch {
	case key.Matches(msg, m.keys.Increment):
		m.setErr(m.step(1))
	case key.Matches(msg, m.keys.Decrement):
		m.setErr(m.step(-1))
	case key.Matches(msg, m.keys.Reset):
		m.setErr(m.session.dispatch(model.SetCount(0)))
	case key.Matches(msg, m.keys.CycleTheme):
		m.setErr(m.cycleTheme())
	case key.Matches(msg, m.keys.SwapStore):
		m.setErr(m.session.swap())
	case key.Matches(msg, m.keys.ToggleStats):
		m.hideStats = !m.hideStats
		m.savePrefs(m.theme.Name)
		m.resize()
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.Up):
		m.viewport.ScrollUp(1)
		m.follow = m.viewport.AtBottom()
	case key.Matches(msg, m.keys.Down):
		m.viewport.ScrollDown(1)
		m.follow = m.viewport.AtBottom()
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.PageUp()
		m.follow = m.viewport.AtBottom()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.PageDown()
		m.follow = m.viewport.AtBottom()
	case key.Matches(msg, m.keys.Bottom):
		m.follow = true
		m.viewport.GotoBottom()
	}
}

func (m *Model) step(delta int) error {
	current, err := m.session.state()
	if err != nil {
		return err
	}
	return m.session.dispatch(model.SetCount(model.Count(current) + delta))
}

func (m *Model) cycleTheme() error {
	next := NextTheme(m.theme.Name)
	if err := m.session.dispatch(model.SetTheme(next)); err != nil {
		return err
	}
	m.savePrefs(next)
	return nil
}

func (m *Model) savePrefs(theme string) {
	if m.prefs == nil {
		return
	}
	hide := m.hideStats
	_, err := m.prefs.Update(func(p *prefs.Prefs) {
		if theme != "" {
			p.Theme = theme
		}
		p.HideStats = hide
	})
	if err != nil {
		m.logger.Warn("save prefs failed", "error", err)
	}
}

// render brings the panels up to date after a message was handled.
func (m *Model) render() {
	logsBefore := m.session.panels.logs.stats.Renders
	themeBefore := m.theme.Name

	if err := m.session.sync(); err != nil {
		m.setErr(err)
	}
	m.applyTheme()
	if m.session.panels.logs.stats.Renders != logsBefore || m.theme.Name != themeBefore {
		m.refreshLogs()
	}
}

func (m *Model) applyTheme() {
	m.theme = GetTheme(m.session.panels.header.value.Theme)
}

func (m *Model) setErr(err error) {
	if err == nil {
		return
	}
	m.lastErr = err
	m.logger.Warn("ui action failed", "error", err)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderMain()
}
