package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/tally/internal/catalog"
	"github.com/five82/tally/internal/dashboard"
	"github.com/five82/tally/internal/inventory"
	"github.com/five82/tally/internal/prefs"
	"github.com/five82/tally/internal/state"
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Service      inventory.Service
	Store        *state.Store
	Logger       *zap.Logger
	PerPage      int
	RefreshEvery time.Duration // zero disables periodic refresh
	ThemeName    string
	PrefsPath    string
	APIURL       string // shown in the header
	LogPath      string // shown in the header while offline
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	svc          inventory.Service
	store        *state.Store
	log          *zap.Logger
	prefsPath    string
	apiURL       string
	logPath      string
	refreshEvery time.Duration
	toastTTL     time.Duration
	clock        func() time.Time

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	width    int
	height   int
	ready    bool
	showHelp bool

	// Dashboard state
	dash        dashboard.State
	memo        *catalog.Memo
	selectedRow int

	// Inputs
	focus   focusArea
	search  textinput.Model
	form    [3]textinput.Model
	formIdx int

	modal       Modal
	toasts      []toast
	nextToastID int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store := opts.Store
	if store == nil {
		store = state.NewStore(opts.Logger)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	m := Model{
		ctx:          ctx,
		svc:          opts.Service,
		store:        store,
		log:          log,
		prefsPath:    opts.PrefsPath,
		apiURL:       opts.APIURL,
		logPath:      opts.LogPath,
		refreshEvery: opts.RefreshEvery,
		toastTTL:     ToastTTL,
		theme:        GetTheme(themeName),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		dash:         dashboard.NewState(opts.PerPage),
		memo:         &catalog.Memo{},
	}
	m.initInputs()
	return m
}

// Init implements tea.Model. The dashboard starts in the loading state, so
// the first refresh is issued here without going through Reduce.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshCmd(m.ctx, m.store, m.svc)}
	if m.refreshEvery > 0 {
		cmds = append(cmds, tickCmd(m.refreshEvery))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case refreshedMsg:
		return m.dispatch(dashboard.RefreshFinished{Snapshot: msg.snapshot, Err: msg.err})

	case mutatedMsg:
		return m.dispatch(dashboard.MutationFinished{Op: msg.op, Snapshot: msg.snapshot, Err: msg.err})

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case tickMsg:
		return m.handleTick()
	}

	// Cursor blink and similar messages belong to the focused input.
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusForm:
		m.form[m.formIdx], cmd = m.form[m.formIdx].Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, events, cmd := m.modal.Update(msg, m.keys)
		m.modal = modal
		cmds := []tea.Cmd{cmd}
		for _, ev := range events {
			var next tea.Cmd
			m, next = m.dispatch(ev)
			cmds = append(cmds, next)
		}
		return m, tea.Batch(cmds...)
	}

	if m.focus != focusTable {
		return m.handleInputKey(msg)
	}

	return m.handleTableKey(msg)
}

// handleTableKey processes keyboard input while the product table has focus.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.dispatch(dashboard.RefreshRequested{})

	case key.Matches(msg, m.keys.Tab):
		m.nextFocus(false)
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.nextFocus(true)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.setFocus(focusSearch)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.formIdx = 0
		m.setFocus(focusForm)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(m.visible().Items)-1 {
			m.selectedRow++
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.selectedRow = 0
		return m.dispatch(dashboard.PrevPage{})

	case key.Matches(msg, m.keys.NextPage):
		m.selectedRow = 0
		return m.dispatch(dashboard.NextPage{})

	case key.Matches(msg, m.keys.SortName):
		return m.dispatch(dashboard.SortRequested{Key: catalog.SortByName})

	case key.Matches(msg, m.keys.SortQty):
		return m.dispatch(dashboard.SortRequested{Key: catalog.SortByQuantity})

	case key.Matches(msg, m.keys.SortCost):
		return m.dispatch(dashboard.SortRequested{Key: catalog.SortByPrice})

	case key.Matches(msg, m.keys.Edit):
		if p, ok := m.selectedProduct(); ok {
			return m.dispatch(dashboard.EditOpened{Product: p})
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if p, ok := m.selectedProduct(); ok {
			return m.dispatch(dashboard.DeleteRequested{ID: p.ID})
		}
		return m, nil
	}

	return m, nil
}

// handleTick issues a periodic refresh unless one is already running or the
// user is in the middle of an edit. The next tick backs off while refreshes
// keep failing.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	next := tickCmd(calculateBackoff(m.dash.Snapshot.ConsecutiveFailures, m.refreshEvery))
	if m.dash.Loading || m.store.Loading() || m.dash.ModalOpen() {
		return m, next
	}
	m, cmd := m.dispatch(dashboard.RefreshRequested{})
	return m, tea.Batch(cmd, next)
}

// dispatch runs ev through the reducer and turns its effects into commands.
func (m Model) dispatch(ev dashboard.Event) (Model, tea.Cmd) {
	next, effects := dashboard.Reduce(m.dash, ev)
	m.dash = next
	m.syncModal()
	m.syncForm()
	m.clampSelection()

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.runEffect(eff))
	}
	return m, tea.Batch(cmds...)
}

// syncModal opens or closes the modal to match the dashboard state.
func (m *Model) syncModal() {
	switch {
	case m.dash.Editing:
		if _, ok := m.modal.(*editModal); !ok {
			m.modal = newEditModal(m.dash.Edit)
		}
	case m.dash.ConfirmingDelete:
		if _, ok := m.modal.(*confirmModal); !ok {
			m.modal = &confirmModal{name: m.productName(m.dash.PendingDelete)}
		}
	default:
		m.modal = nil
	}
}

func (m *Model) clampSelection() {
	n := len(m.visible().Items)
	if m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

// visible returns the current page, cached on the snapshot version and query.
func (m Model) visible() catalog.Result {
	return m.memo.Derive(m.dash.Snapshot.Version, m.dash.Snapshot.Products, m.dash.Query())
}

func (m Model) selectedProduct() (inventory.Product, bool) {
	items := m.visible().Items
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return inventory.Product{}, false
	}
	return items[m.selectedRow], true
}

func (m Model) productName(id inventory.ID) string {
	for _, p := range m.dash.Snapshot.Products {
		if p.ID == id {
			return p.Name
		}
	}
	return id.String()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// renderMain renders the full dashboard.
func (m Model) renderMain() string {
	res := m.visible()
	styles := m.theme.Styles()

	toolbar := m.renderSearch()
	if pager := m.renderPager(res.Page, res.TotalPages); pager != "" {
		toolbar = lipgloss.JoinHorizontal(lipgloss.Center, toolbar, "   ", pager)
	}

	sections := []string{
		m.renderHeader(),
		m.renderStats(),
		m.renderForm(),
		"",
		styles.Text.Bold(true).Render("Product Inventory"),
		toolbar,
		m.renderTable(res),
	}
	if t := m.renderToasts(); t != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	sections = append(sections, m.help.View(m.keys))

	return strings.TrimRight(lipgloss.JoinVertical(lipgloss.Left, sections...), "\n")
}

// Run starts the Bubble Tea program. Cancelling opts.Context ends it cleanly.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
