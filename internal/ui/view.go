package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/happy-machine/clipboard-warrior/internal/format/table"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
	"github.com/happy-machine/clipboard-warrior/internal/store"
	"github.com/muesli/reflow/truncate"
)

const (
	tabBarLabel      = "Menu"
	tabBarDivider    = " │ "
	tabSeparator     = " | "
	continuationMark = " ⏎"
	infoTTL          = 5 * time.Second
)

var homeBanner = []string{
	"______ __ __       __                        __                               __            ",
	"|      |  |__.-----|  |--.-----.---.-.----.--|  |    .--.--.--.---.-.----.----|__.-----.----.",
	"|   ---|  |  |  _  |  _  |  _  |  _  |   _|  _  |    |  |  |  |  _  |   _|   _|  |  _  |   _|",
	"|______|__|__|   __|_____|_____|___._|__| |_____|    |________|___._|__| |__| |__|_____|__|  ",
	"             |__|                                                                            ",
}

var homeUsage = []string{
	"Clipboard warrior makes it easy for you to save, retrieve and backup terminal commands.",
	"Menu options and commands are created from the contents of the local clipboarddb.json file.",
	"Your favourite commands are pasted from your clipboard and saved to this file.",
	"",
	"Use the arrow keys to navigate between menus and commands. Copy selected to clipboard with 'c'.",
	"Paste clipboard to current menu with 'p', to a new menu with 'n', and delete commands with 'd'.",
	"Filter the current menu with '/'.",
	"",
	"By Happy Machine (https://github.com/happy-machine)",
}

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == ModeMenuForm && m.menuForm != nil {
		return m.viewMenuForm()
	}
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.tabBar(), raw: true}, styledLine{})
	if m.onReservedTab() {
		lines = append(lines, m.homeLines()...)
	} else {
		lines = append(lines, m.commandLines()...)
	}
	lines = append(lines, m.trailerLines()...)
	// Reserve 2 rows for the bottom bar (status + filter prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)
	lines = append(lines, applyWidth(m.bottomLines(m.filterPrompt()), m.width)...)
	return renderLines(lines)
}

func (m *Model) viewMenuForm() string {
	lines := []styledLine{
		{text: m.tabBar(), raw: true},
		{},
		{text: m.menuForm.Title(), style: styles.FormTitle},
		{text: m.menuForm.InputView(), raw: true},
	}
	if errText := m.menuForm.Error(); errText != "" {
		lines = append(lines, styledLine{text: errText, style: styles.Error})
	}
	lines = append(lines, styledLine{}, styledLine{text: m.menuForm.Help(), style: styles.Footer})
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

// tabBar renders every menu label, highlighting the active tab and
// underlining the first rune of each reserved label.
func (m *Model) tabBar() string {
	menus := m.menus()
	home := menu.HomeIndex(menus)
	parts := make([]string, len(menus))
	for i, name := range menus {
		style := styles.Tab
		if i == m.nav.Active {
			style = styles.ActiveTab
		}
		if i >= home {
			parts[i] = renderAccented(style, name)
			continue
		}
		parts[i] = renderWith(style, name)
	}
	bar := renderWith(styles.TabLabel, tabBarLabel) +
		renderWith(styles.TabSeparator, tabBarDivider) +
		strings.Join(parts, renderWith(styles.TabSeparator, tabSeparator))
	if m.width > 0 {
		bar = ansi.Truncate(bar, m.width, "…")
	}
	return bar
}

func renderWith(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func renderAccented(style *lipgloss.Style, label string) string {
	runes := []rune(label)
	if len(runes) == 0 {
		return ""
	}
	accent := lipgloss.NewStyle().Underline(true)
	if style != nil {
		accent = style.Copy()
		if styles.TabAccent != nil {
			accent = accent.Inherit(*styles.TabAccent)
		}
	}
	return accent.Render(string(runes[:1])) + renderWith(style, string(runes[1:]))
}

func (m *Model) homeLines() []styledLine {
	lines := make([]styledLine, 0, len(homeBanner)+len(homeUsage)+1)
	for _, line := range homeBanner {
		lines = append(lines, styledLine{text: m.center(line), style: styles.Banner})
	}
	lines = append(lines, styledLine{})
	for _, line := range homeUsage {
		lines = append(lines, styledLine{text: m.center(line), style: styles.Info})
	}
	lines = append(lines, styledLine{})
	for _, line := range m.centerBlock(m.keyReference()) {
		lines = append(lines, styledLine{text: line, style: styles.Footer})
	}
	return lines
}

// keyReference lists every binding as an aligned key/description table.
func (m *Model) keyReference() []string {
	rows := make([][]string, 0, 16)
	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			rows = append(rows, []string{h.Key, h.Desc})
		}
	}
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignLeft})
}

// centerBlock indents lines as one block so their columns stay aligned.
func (m *Model) centerBlock(lines []string) []string {
	if m.width <= 0 {
		return lines
	}
	widest := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > widest {
			widest = w
		}
	}
	pad := (m.width - widest) / 2
	if pad <= 0 {
		return lines
	}
	indent := strings.Repeat(" ", pad)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = indent + line
	}
	return out
}

func (m *Model) center(text string) string {
	if m.width <= 0 || text == "" {
		return text
	}
	return strings.TrimRight(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, text), " ")
}

func (m *Model) commandLines() []styledLine {
	visible := m.visibleCommands()
	if len(visible) == 0 {
		msg := fmt.Sprintf("No commands in %q. Press p to paste one.", m.activeMenu())
		if m.nav.FilterActive() {
			msg = fmt.Sprintf("No matches for %q", m.nav.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	m.syncViewport()
	start := 0
	display := visible
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
		start = m.nav.ViewportOffset
		display = display[start : start+maxItems]
	}
	lines := make([]styledLine, 0, len(display))
	for i, cmd := range display {
		lines = append(lines, m.buildItemLine(cmd, start+i, m.width))
	}
	return lines
}

func (m *Model) buildItemLine(cmd store.Command, idx int, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.nav.Row {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + commandLabel(cmd.Command)
	if width > 0 {
		fullText = truncateText(fullText, width)
		if pad := width - lipgloss.Width(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// commandLabel shows the first line of a command, marking multi-line ones.
func commandLabel(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimRight(text[:idx], "\r") + continuationMark
	}
	return text
}

func (m *Model) trailerLines() []styledLine {
	lines := make([]styledLine, 0, 4)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.footerHelp(), raw: true})
	}
	return lines
}

func (m *Model) footerHelp() string {
	if m.mode == ModeFilter {
		return m.help.View(filterKeys{m.keys})
	}
	return m.help.View(m.keys)
}

func (m *Model) bottomLines(prompt string) []styledLine {
	var status styledLine
	switch {
	case m.errMsg != "":
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	case m.loading && m.pendingLabel != "":
		status = styledLine{text: m.pendingLabel + "…", style: styles.Info}
	case m.backendLastErr != "":
		status = styledLine{text: fmt.Sprintf("Store: %s", m.backendLastErr), style: styles.Error}
	}
	return []styledLine{status, {text: prompt, raw: true}}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
		m.help.Width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // tab bar + blank
	used += 2 // bottom bar: status + filter prompt
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 1 + lipgloss.Height(m.footerHelp())
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(infoTTL)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = ansi.Truncate(text, width, "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

// truncateText shortens text to width display cells, ending with an ellipsis.
func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return string([]rune(text)[:1])
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
