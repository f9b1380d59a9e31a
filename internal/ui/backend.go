package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/backend"
	"github.com/happy-machine/clipboard-warrior/internal/logging"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent refreshes the snapshot when the store file changed. Ticks
// only expire stale status text.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.dispatcher == nil {
		return
	}
	prev := m.menus()
	res := m.dispatcher.Handle(evt)
	if res.Tick {
		m.clearInfo()
		return
	}
	if res.Err != nil {
		if text := res.Err.Error(); text != m.backendLastErr {
			m.backendLastErr = text
			logging.Error(res.Err)
		}
		return
	}
	if res.CommandsUpdated {
		m.backendLastErr = ""
		m.nav.Retarget(prev, m.menus(), "")
		m.syncViewport()
	}
}
