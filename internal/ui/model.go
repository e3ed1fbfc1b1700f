package ui

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cmdk-popup/internal/backend"
	"github.com/atomicstack/cmdk-popup/internal/data/dispatcher"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/palette"
	"github.com/atomicstack/cmdk-popup/internal/state"
	"github.com/atomicstack/cmdk-popup/internal/theme"
	"github.com/atomicstack/cmdk-popup/internal/ui/command"
)

const (
	defaultPlaceholder = "Type a command or search..."
	defaultEmptyText   = "No results found."
	loadingLabel       = "Loading..."
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config carries everything NewModel needs.
type Config struct {
	Options     palette.Options
	Title       string
	Placeholder string
	Search      string
	Sources     []menu.Source
	Context     menu.Context
	Watcher     *backend.Watcher
	Width       int
	Height      int
	ShowFooter  bool
	Dialog      bool
	// Override replaces every item's action, e.g. to print values only.
	Override menu.Action
}

// Model implements the Bubble Tea model hosting a palette.Command.
type Model struct {
	cmd   *palette.Command
	input textinput.Model
	help  help.Model
	rec   *reconciler
	list  *list

	menus      state.MenuStore
	dispatcher *dispatcher.Dispatcher
	bus        *command.Bus
	backend    *backend.Watcher
	sources    []menu.Source
	menuCtx    menu.Context

	title       string
	placeholder string
	pending     int
	loading     palette.Loading
	errMsg      string
	infoMsg     string
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	dialog      *Dialog

	queued    []tea.Cmd
	output    string
	cancelled bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the palette and its search input. Menus arrive
// asynchronously once Init runs.
func NewModel(cfg Config) *Model {
	names := make([]string, 0, len(cfg.Sources))
	for _, src := range cfg.Sources {
		names = append(names, src.Name)
	}
	menus := state.NewMenuStore(names...)
	m := &Model{
		cmd:         palette.New(cfg.Options),
		help:        help.New(),
		menus:       menus,
		dispatcher:  dispatcher.New(menus),
		bus:         command.New(cfg.Override),
		backend:     cfg.Watcher,
		sources:     cfg.Sources,
		menuCtx:     cfg.Context,
		title:       strings.TrimSpace(cfg.Title),
		placeholder: strings.TrimSpace(cfg.Placeholder),
		pending:     len(cfg.Sources),
		loading:     palette.Loading{Label: loadingLabel},
		showFooter:  cfg.ShowFooter,
	}
	if cfg.Dialog {
		m.dialog = NewDialog()
	}
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	m.rec = newReconciler(m.cmd, m.queueAction)
	m.list = newList(m.cmd, m.rec)
	m.list.resize = m.syncViewport
	m.cmd.SetLayout(m.rec)
	m.cmd.SetScroller(m.list)

	m.input = newSearchInput(m.effectivePlaceholder())
	if cfg.Search != "" {
		m.input.SetValue(cfg.Search)
		m.cmd.SetSearch(cfg.Search)
	}
	m.registerHandlers()
	m.cmd.Settle()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.sources)+2)
	for _, src := range m.sources {
		cmds = append(cmds, m.loadSourceCmd(src))
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.input.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if m.dialog != nil {
		m.dialog.SetOpen(true, "init")
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(sourceLoadedMsg{}):   m.handleSourceLoadedMsg,
		reflect.TypeOf(menu.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate settles the palette once per message so deferred selection
// and scrolling observe the final state of the batch.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.cmd.Settle()
	m.syncViewport()
	if len(m.queued) > 0 {
		cmds = append(cmds, m.queued...)
		m.queued = nil
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Command exposes the hosted palette.
func (m *Model) Command() *palette.Command { return m.cmd }

// Output is the text to print once the program exits.
func (m *Model) Output() string { return m.output }

// Cancelled reports whether the user dismissed the palette without choosing.
func (m *Model) Cancelled() bool { return m.cancelled }

// Dialog returns the frame the palette is drawn in, or nil.
func (m *Model) Dialog() *Dialog { return m.dialog }

func (m *Model) effectivePlaceholder() string {
	if m.placeholder != "" {
		return m.placeholder
	}
	return defaultPlaceholder
}

func newSearchInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = placeholder
	if styles.Prompt != nil {
		ti.PromptStyle = *styles.Prompt
	}
	if styles.Input != nil {
		ti.TextStyle = *styles.Input
	}
	if styles.Placeholder != nil {
		ti.PlaceholderStyle = *styles.Placeholder
	}
	if styles.Cursor != nil {
		ti.Cursor.Style = *styles.Cursor
	}
	return ti
}

// staticCursor stops the input cursor from blinking so that no timer
// commands are produced.
func (m *Model) staticCursor() {
	m.input.Cursor.SetMode(cursor.CursorStatic)
}
