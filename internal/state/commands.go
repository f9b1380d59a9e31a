package state

import (
	"github.com/happy-machine/clipboard-warrior/internal/menu"
	"github.com/happy-machine/clipboard-warrior/internal/store"
)

// CommandStore holds the last loaded snapshot of the command file.
type CommandStore interface {
	Entries() []store.Command
	SetEntries([]store.Command)
	Menus() []string
	Visible(menu string) []store.Command
}

type commandStore struct {
	entries []store.Command
	menus   []string
}

func NewCommandStore() CommandStore {
	return &commandStore{menus: menu.BuildIndex(nil)}
}

func (s *commandStore) Entries() []store.Command {
	return cloneCommands(s.entries)
}

// SetEntries replaces the snapshot and rebuilds the menu index from it.
func (s *commandStore) SetEntries(entries []store.Command) {
	s.entries = cloneCommands(entries)
	s.menus = menu.BuildIndex(s.entries)
}

func (s *commandStore) Menus() []string {
	return append([]string(nil), s.menus...)
}

// Visible returns the commands filed under the named menu.
func (s *commandStore) Visible(name string) []store.Command {
	return menu.CommandsIn(s.entries, name)
}

func cloneCommands(entries []store.Command) []store.Command {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]store.Command, len(entries))
	copy(dup, entries)
	return dup
}
