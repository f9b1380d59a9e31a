package menu

import (
	"errors"
	"fmt"

	"github.com/happy-machine/clipboard-warrior/internal/store"
)

// Reserved tab labels, always appended after the dynamic menus in this order.
const (
	LabelHome   = "Home"
	LabelCopy   = "Copy"
	LabelPaste  = "Paste"
	LabelDelete = "Delete"
	LabelQuit   = "Quit"
)

var reservedLabels = []string{LabelHome, LabelCopy, LabelPaste, LabelDelete, LabelQuit}

// ErrReservedMenu is returned when a command would be filed under a reserved label.
var ErrReservedMenu = errors.New("reserved menu name")

// IndexError reports a row selection past the end of a menu's commands.
type IndexError struct {
	Menu  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("row %d out of range for menu %q (%d commands)", e.Index, e.Menu, e.Len)
}

// ReservedLabels returns a copy of the reserved tab labels.
func ReservedLabels() []string {
	return append([]string(nil), reservedLabels...)
}

// IsReserved reports whether name is one of the reserved tab labels.
func IsReserved(name string) bool {
	for _, label := range reservedLabels {
		if label == name {
			return true
		}
	}
	return false
}

// BuildIndex lists each distinct menu in first-seen order followed by the
// reserved labels.
func BuildIndex(commands []store.Command) []string {
	menus := make([]string, 0, len(commands)+len(reservedLabels))
	seen := make(map[string]struct{}, len(commands))
	for _, cmd := range commands {
		if _, ok := seen[cmd.Menu]; ok {
			continue
		}
		seen[cmd.Menu] = struct{}{}
		menus = append(menus, cmd.Menu)
	}
	return append(menus, reservedLabels...)
}

// HomeIndex returns the position of the Home tab within menus.
func HomeIndex(menus []string) int {
	idx := len(menus) - len(reservedLabels)
	if idx < 0 {
		return 0
	}
	return idx
}

// DynamicCount returns how many user-defined menus precede the reserved block.
func DynamicCount(menus []string) int {
	return HomeIndex(menus)
}

// IndexOf returns the position of name within menus, or -1.
func IndexOf(menus []string, name string) int {
	for i, m := range menus {
		if m == name {
			return i
		}
	}
	return -1
}

// CommandsIn returns the commands filed under menu, in store order.
func CommandsIn(commands []store.Command, menu string) []store.Command {
	filtered := make([]store.Command, 0, len(commands))
	for _, cmd := range commands {
		if cmd.Menu == menu {
			filtered = append(filtered, cmd)
		}
	}
	return filtered
}

// At returns the command at row within list.
func At(list []store.Command, menu string, row int) (store.Command, error) {
	if row < 0 || row >= len(list) {
		return store.Command{}, &IndexError{Menu: menu, Index: row, Len: len(list)}
	}
	return list[row], nil
}
