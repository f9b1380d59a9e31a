package state

import "github.com/happy-machine/clipboard-warrior/internal/menu"

// Nav tracks the active tab, the selected row within that tab's visible
// commands, the list viewport, and an optional filter query.
type Nav struct {
	Active         int
	Row            int
	ViewportOffset int
	Filter         string
	FilterCursor   int
}

// MoveTabRight advances to the next tab. From Home it wraps to the first tab;
// the reserved block after Home is never entered.
func (n *Nav) MoveTabRight(menus []string) bool {
	old := n.Active
	home := menu.HomeIndex(menus)
	switch {
	case n.Active == home:
		n.Active = 0
	case n.Active < home:
		n.Active++
	}
	n.resetRow()
	return old != n.Active
}

// MoveTabLeft steps back one tab. From Home it wraps to the first tab.
func (n *Nav) MoveTabLeft(menus []string) bool {
	old := n.Active
	home := menu.HomeIndex(menus)
	switch {
	case n.Active == home:
		n.Active = 0
	case n.Active >= 1:
		n.Active--
	}
	n.resetRow()
	return old != n.Active
}

// JumpHome selects the Home tab.
func (n *Nav) JumpHome(menus []string) {
	n.Active = menu.HomeIndex(menus)
}

// OnHome reports whether the Home tab is active.
func (n *Nav) OnHome(menus []string) bool {
	return n.Active == menu.HomeIndex(menus)
}

// ActiveName returns the label of the active tab.
func (n *Nav) ActiveName(menus []string) string {
	if n.Active < 0 || n.Active >= len(menus) {
		return ""
	}
	return menus[n.Active]
}

// RowDown moves the selection down, wrapping to the first row.
func (n *Nav) RowDown(count int) bool {
	if count <= 0 {
		n.Row = 0
		return false
	}
	old := n.Row
	if n.Row >= count-1 {
		n.Row = 0
	} else {
		n.Row++
	}
	return old != n.Row
}

// RowUp moves the selection up, wrapping to the last row.
func (n *Nav) RowUp(count int) bool {
	if count <= 0 {
		n.Row = 0
		return false
	}
	old := n.Row
	if n.Row <= 0 || n.Row > count-1 {
		n.Row = count - 1
	} else {
		n.Row--
	}
	return old != n.Row
}

// AfterDelete steps the selection back one row, floored at zero.
func (n *Nav) AfterDelete() {
	if n.Row > 0 {
		n.Row--
	} else {
		n.Row = 0
	}
}

// Retarget re-resolves the active tab after the menu list was rebuilt. The
// tab stays on focus (or the previously active name) when it still exists;
// otherwise the index is kept, bounded by the new Home position.
func (n *Nav) Retarget(prev, next []string, focus string) {
	if focus == "" && n.OnHome(prev) {
		n.Active = menu.HomeIndex(next)
		return
	}
	name := focus
	if name == "" {
		name = n.ActiveName(prev)
	}
	if idx := menu.IndexOf(next, name); idx >= 0 {
		if idx != n.Active {
			n.resetRow()
		}
		n.Active = idx
		return
	}
	n.resetRow()
	home := menu.HomeIndex(next)
	if n.Active > home || n.Active < 0 {
		n.Active = home
	}
}

// ClampRow keeps the selection inside [0, count).
func (n *Nav) ClampRow(count int) {
	if count <= 0 || n.Row < 0 {
		n.Row = 0
		return
	}
	if n.Row >= count {
		n.Row = count - 1
	}
}

// EnsureRowVisible adjusts the viewport offset so the selected row stays visible.
func (n *Nav) EnsureRowVisible(count, maxVisible int) {
	if count == 0 {
		n.Row = 0
		n.ViewportOffset = 0
		return
	}
	n.ClampRow(count)
	if maxVisible <= 0 {
		n.ViewportOffset = 0
		return
	}
	maxOffset := count - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.ViewportOffset > maxOffset {
		n.ViewportOffset = maxOffset
	}
	if n.ViewportOffset < 0 {
		n.ViewportOffset = 0
	}
	if n.Row < n.ViewportOffset {
		n.ViewportOffset = n.Row
	}
	if upper := n.ViewportOffset + maxVisible - 1; n.Row > upper {
		n.ViewportOffset = n.Row - maxVisible + 1
	}
}

func (n *Nav) resetRow() {
	n.Row = 0
	n.ViewportOffset = 0
	n.Filter = ""
	n.FilterCursor = 0
}
