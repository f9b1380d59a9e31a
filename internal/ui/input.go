package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.nav.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

// startFilter focuses the filter prompt. Reserved tabs have nothing to filter.
func (m *Model) startFilter() {
	if m.onReservedTab() {
		return
	}
	m.mode = ModeFilter
	m.filterCursorDirty = true
}

// clearFilter drops the filter and returns to browsing.
func (m *Model) clearFilter() {
	m.mode = ModeBrowse
	if m.nav.ClearFilter() {
		events.Filter.Cleared(m.activeMenu())
	}
	m.syncViewport()
}

// handleFilterKey consumes keys aimed at the filter prompt. Keys it does not
// handle fall through to the browse key map.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Clear):
		m.clearFilter()
		return true, nil
	case key.Matches(msg, m.keys.Accept):
		m.mode = ModeBrowse
		return true, nil
	}
	switch msg.String() {
	case "ctrl+u":
		before := m.nav.FilterCursorPos()
		if m.nav.ClearFilter() {
			m.noteFilterCursorChange(before)
			events.Filter.Cleared(m.activeMenu())
			m.syncViewport()
		}
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.removeFilterRune()
		return true, nil
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		m.appendToFilter(string(msg.Runes))
		return true, nil
	case tea.KeySpace:
		m.appendToFilter(" ")
		return true, nil
	case tea.KeyLeft:
		before := m.nav.FilterCursorPos()
		m.nav.MoveFilterCursorRuneBackward()
		m.noteFilterCursorChange(before)
		return true, nil
	case tea.KeyRight:
		before := m.nav.FilterCursorPos()
		m.nav.MoveFilterCursorRuneForward()
		m.noteFilterCursorChange(before)
		return true, nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string) bool {
	before := m.nav.FilterCursorPos()
	if !m.nav.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(m.activeMenu(), m.nav.Filter)
	m.syncViewport()
	return true
}

func (m *Model) removeFilterRune() bool {
	before := m.nav.FilterCursorPos()
	if !m.nav.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Backspace(m.activeMenu(), m.nav.Filter)
	m.syncViewport()
	return true
}

// filterPrompt renders the filter line. It is empty when no filter is set and
// the prompt is not focused.
func (m *Model) filterPrompt() string {
	if m.mode != ModeFilter && !m.nav.FilterActive() {
		return ""
	}
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "/ "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if m.mode != ModeFilter {
		return prompt + render(styles.Filter, m.nav.Filter)
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	text := m.nav.Filter
	if text == "" {
		placeholder := "(type to filter)"
		runes := []rune(placeholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(text)
	pos := m.nav.FilterCursorPos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	var after string
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
