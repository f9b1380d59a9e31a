package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/backend"
	"github.com/happy-machine/clipboard-warrior/internal/clipboard"
	"github.com/happy-machine/clipboard-warrior/internal/data/dispatcher"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
	"github.com/happy-machine/clipboard-warrior/internal/state"
	"github.com/happy-machine/clipboard-warrior/internal/store"
	"github.com/happy-machine/clipboard-warrior/internal/theme"
	"github.com/happy-machine/clipboard-warrior/internal/ui/command"
	uistate "github.com/happy-machine/clipboard-warrior/internal/ui/state"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeFilter
	ModeMenuForm
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	Store              store.Store
	Clipboard          clipboard.Clipboard
	Watcher            *backend.Watcher
	Commands           []store.Command
	Width              int
	Height             int
	ShowFooter         bool
	Verbose            bool
	AllowReservedPaste bool
}

// Model implements the Bubble Tea model for the clipboard menu.
type Model struct {
	nav               uistate.Nav
	loading           bool
	pendingID         string
	pendingLabel      string
	errMsg            string
	infoMsg           string
	infoExpire        time.Time
	width             int
	height            int
	fixedWidth        bool
	fixedHeight       bool
	backend           *backend.Watcher
	backendLastErr    string
	showFooter        bool
	verbose           bool
	allowReserved     bool
	menuForm          *menu.NewMenuForm
	filterCursor      cursor.Model
	filterCursorDirty bool
	staticCursor      bool
	keys              keyMap
	help              help.Model

	handlers map[reflect.Type]msgHandler

	bus        *command.Bus
	mode       Mode
	store      store.Store
	clipboard  clipboard.Clipboard
	commands   state.CommandStore
	dispatcher *dispatcher.Dispatcher
}

// NewModel initialises the UI state from the loaded commands and configuration.
// The first tab is active on start; it is Home only when the store is empty.
func NewModel(opts Options) *Model {
	commands := state.NewCommandStore()
	commands.SetEntries(opts.Commands)
	m := &Model{
		bus:           command.New(),
		backend:       opts.Watcher,
		showFooter:    opts.ShowFooter,
		verbose:       opts.Verbose,
		allowReserved: opts.AllowReservedPaste,
		mode:          ModeBrowse,
		store:         opts.Store,
		clipboard:     opts.Clipboard,
		commands:      commands,
		keys:          defaultKeyMap(),
		help:          help.New(),
	}
	if opts.Store != nil {
		m.dispatcher = dispatcher.New(opts.Store, commands)
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if styles.Footer != nil {
		m.help.Styles.ShortKey = styles.Footer.Copy().Bold(true)
		m.help.Styles.ShortDesc = styles.Footer.Copy()
		m.help.Styles.FullKey = styles.Footer.Copy().Bold(true)
		m.help.Styles.FullDesc = styles.Footer.Copy()
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	handled, cmd := m.handleActiveForm(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handled {
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, m.finishUpdate(cmds)
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.mode == ModeMenuForm {
		return m.handleMenuForm(msg)
	}
	return false, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
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

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// disableBlink stops the filter and form cursors from scheduling blink timers.
func (m *Model) disableBlink() {
	m.staticCursor = true
	m.filterCursor.SetMode(cursor.CursorStatic)
	if m.menuForm != nil {
		m.menuForm.DisableBlink()
	}
}

// menus returns the current tab labels.
func (m *Model) menus() []string {
	return m.commands.Menus()
}

// activeMenu returns the label of the active tab.
func (m *Model) activeMenu() string {
	return m.nav.ActiveName(m.menus())
}

// onReservedTab reports whether the active tab is Home or one of the reserved
// labels after it.
func (m *Model) onReservedTab() bool {
	return m.nav.Active >= menu.HomeIndex(m.menus())
}

// visibleCommands returns the rows of the active tab after filtering.
func (m *Model) visibleCommands() []store.Command {
	if m.onReservedTab() {
		return nil
	}
	return uistate.FilterCommands(m.commands.Visible(m.activeMenu()), m.nav.Filter)
}

func (m *Model) menuContext() menu.Context {
	return menu.Context{
		Store:         m.store,
		Clipboard:     m.clipboard,
		Menu:          m.activeMenu(),
		AllowReserved: m.allowReserved,
	}
}
