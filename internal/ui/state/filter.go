package state

import (
	"strings"

	"github.com/happy-machine/clipboard-warrior/internal/store"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterActive reports whether a non-blank filter query is set.
func (n *Nav) FilterActive() bool {
	return strings.TrimSpace(n.Filter) != ""
}

// SetFilter replaces the filter query and moves the selection to the top.
func (n *Nav) SetFilter(query string, cursor int) {
	n.Filter = query
	runes := []rune(query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	n.FilterCursor = cursor
	n.Row = 0
	n.ViewportOffset = 0
}

// FilterCursorPos returns the rune offset of the filter cursor.
func (n *Nav) FilterCursorPos() int {
	runes := []rune(n.Filter)
	if n.FilterCursor < 0 {
		return 0
	}
	if n.FilterCursor > len(runes) {
		return len(runes)
	}
	return n.FilterCursor
}

// InsertFilterText inserts text into the filter at the cursor position.
func (n *Nav) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(n.Filter)
	pos := n.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	n.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes a rune before the filter cursor.
func (n *Nav) DeleteFilterRuneBackward() bool {
	runes := []rune(n.Filter)
	pos := n.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	n.SetFilter(string(updated), pos-1)
	return true
}

// MoveFilterCursorRuneBackward moves the filter cursor one rune backward.
func (n *Nav) MoveFilterCursorRuneBackward() bool {
	if n.FilterCursorPos() == 0 {
		return false
	}
	n.FilterCursor = n.FilterCursorPos() - 1
	return true
}

// MoveFilterCursorRuneForward moves the filter cursor one rune forward.
func (n *Nav) MoveFilterCursorRuneForward() bool {
	pos := n.FilterCursorPos()
	if pos >= len([]rune(n.Filter)) {
		return false
	}
	n.FilterCursor = pos + 1
	return true
}

// ClearFilter drops the filter query. It reports whether one was set.
func (n *Nav) ClearFilter() bool {
	if n.Filter == "" {
		return false
	}
	n.SetFilter("", 0)
	return true
}

// FilterCommands returns the commands matching query, keeping store order.
// Fuzzy matches are preferred; a plain substring match is the fallback.
func FilterCommands(commands []store.Command, query string) []store.Command {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return commands
	}
	texts := make([]string, len(commands))
	for i, cmd := range commands {
		texts[i] = cmd.Command
	}
	if ranks := fuzzy.RankFindNormalizedFold(trimmed, texts); len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]store.Command, 0, len(matches))
		for idx, cmd := range commands {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, cmd)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]store.Command, 0, len(commands))
	for _, cmd := range commands {
		if strings.Contains(strings.ToLower(cmd.Command), lower) {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}
