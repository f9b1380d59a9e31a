package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
)

func (m *Model) openMenuForm() tea.Cmd {
	if m.loading {
		return nil
	}
	dynamic := m.menus()[:menu.DynamicCount(m.menus())]
	m.menuForm = menu.NewNewMenuForm(dynamic, m.allowReserved)
	m.mode = ModeMenuForm
	m.errMsg = ""
	if m.staticCursor {
		m.menuForm.DisableBlink()
		return nil
	}
	return textinput.Blink
}

func (m *Model) handleMenuForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.menuForm == nil {
		m.mode = ModeBrowse
		return false, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Other messages reach their handlers too; the form only animates.
		cmd, _, _ := m.menuForm.Update(msg)
		return false, cmd
	}
	if keyMsg.Type == tea.KeyCtrlC {
		return true, tea.Quit
	}
	cmd, done, cancel := m.menuForm.Update(msg)
	if cancel {
		m.menuForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		ctx := m.menuContext()
		ctx.Menu = m.menuForm.Value()
		label := m.menuForm.PendingLabel()
		m.menuForm = nil
		m.mode = ModeBrowse
		if next := m.runAction(ctx, menu.ActionNewMenu, label); next != nil {
			cmd = tea.Batch(cmd, next)
		}
		return true, cmd
	}
	return true, cmd
}
