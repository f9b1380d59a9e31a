package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/logging"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
	"github.com/happy-machine/clipboard-warrior/internal/ui/command"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode == ModeFilter {
		if handled, cmd := m.handleFilterKey(keyMsg); handled {
			return cmd
		}
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Right):
		m.moveTab(true)
	case key.Matches(keyMsg, m.keys.Left):
		m.moveTab(false)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveRow(true)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveRow(false)
	case key.Matches(keyMsg, m.keys.Home):
		m.jumpHome()
	case key.Matches(keyMsg, m.keys.Copy):
		return m.copySelected()
	case key.Matches(keyMsg, m.keys.Paste):
		return m.pasteClipboard()
	case key.Matches(keyMsg, m.keys.Delete):
		return m.deleteSelected()
	case key.Matches(keyMsg, m.keys.NewMenu):
		return m.openMenuForm()
	case key.Matches(keyMsg, m.keys.Filter):
		m.startFilter()
	case key.Matches(keyMsg, m.keys.Clear):
		m.clearFilter()
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) moveTab(right bool) {
	menus := m.menus()
	from := m.nav.Active
	var changed bool
	if right {
		changed = m.nav.MoveTabRight(menus)
	} else {
		changed = m.nav.MoveTabLeft(menus)
	}
	if m.mode == ModeFilter {
		m.mode = ModeBrowse
	}
	if changed {
		m.errMsg = ""
		events.UI.TabChange(from, m.nav.Active, m.activeMenu())
	}
	m.syncViewport()
}

func (m *Model) moveRow(down bool) {
	count := len(m.visibleCommands())
	var changed bool
	if down {
		changed = m.nav.RowDown(count)
	} else {
		changed = m.nav.RowUp(count)
	}
	if changed {
		events.UI.RowMove(m.activeMenu(), m.nav.Row)
	}
	m.syncViewport()
}

func (m *Model) jumpHome() {
	m.nav.JumpHome(m.menus())
	if m.mode == ModeFilter {
		m.mode = ModeBrowse
	}
	events.UI.Home(m.nav.Active)
}

// selectedContext resolves the highlighted row into an action context.
func (m *Model) selectedContext() (menu.Context, error) {
	ctx := m.menuContext()
	target, err := menu.At(m.visibleCommands(), ctx.Menu, m.nav.Row)
	if err != nil {
		return ctx, err
	}
	ctx.Target = target
	return ctx, nil
}

func (m *Model) copySelected() tea.Cmd {
	if m.loading {
		return nil
	}
	ctx, err := m.selectedContext()
	if err != nil {
		m.reportError(err)
		return nil
	}
	return m.runAction(ctx, menu.ActionCopy, "copy")
}

func (m *Model) pasteClipboard() tea.Cmd {
	if m.loading {
		return nil
	}
	ctx := m.menuContext()
	return m.runAction(ctx, menu.ActionPaste, "paste → "+ctx.Menu)
}

func (m *Model) deleteSelected() tea.Cmd {
	if m.loading {
		return nil
	}
	ctx, err := m.selectedContext()
	if err != nil {
		m.reportError(err)
		return nil
	}
	return m.runAction(ctx, menu.ActionDelete, "delete")
}

func (m *Model) runAction(ctx menu.Context, id, label string) tea.Cmd {
	handler, ok := menu.ActionHandlers()[id]
	if !ok {
		return nil
	}
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.errMsg = ""
	return m.bus.Execute(ctx, command.Request{ID: id, Label: label, Handler: handler})
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if res.Err != nil {
		m.reportError(res.Err)
		return nil
	}
	m.errMsg = ""
	events.Action.Success(res.Info)
	if res.Changed {
		m.reloadCommands(res.ID == menu.ActionDelete, res.Focus)
	}
	if m.verbose && res.Info != "" {
		m.setInfo(res.Info)
	}
	return nil
}

// reloadCommands refreshes the snapshot after a mutation and keeps the
// active tab pinned to focus (or the previously active menu).
func (m *Model) reloadCommands(deleted bool, focus string) {
	if m.dispatcher == nil {
		return
	}
	prev := m.menus()
	res := m.dispatcher.Reload()
	if res.Err != nil {
		m.reportError(res.Err)
		return
	}
	if deleted {
		m.nav.AfterDelete()
	}
	m.nav.Retarget(prev, m.menus(), focus)
	m.syncViewport()
}

func (m *Model) reportError(err error) {
	if err == nil {
		return
	}
	m.forceClearInfo()
	m.errMsg = err.Error()
	logging.Error(err)
	events.Action.Error(err)
}

// syncViewport clamps the selection to the visible rows and scrolls it into view.
func (m *Model) syncViewport() {
	if m.onReservedTab() {
		return
	}
	m.nav.EnsureRowVisible(len(m.visibleCommands()), m.maxVisibleItems())
}
