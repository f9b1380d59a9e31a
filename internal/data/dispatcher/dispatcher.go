package dispatcher

import (
	"fmt"

	"github.com/happy-machine/clipboard-warrior/internal/backend"
	"github.com/happy-machine/clipboard-warrior/internal/state"
	"github.com/happy-machine/clipboard-warrior/internal/store"
)

type Result struct {
	Tick            bool
	CommandsUpdated bool
	Err             error
}

type Dispatcher struct {
	store    store.Store
	commands state.CommandStore
}

func New(s store.Store, c state.CommandStore) *Dispatcher {
	return &Dispatcher{store: s, commands: c}
}

// Handle applies a backend event to the command snapshot.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	switch evt.Kind {
	case backend.KindTick:
		return Result{Tick: true}
	case backend.KindStore:
		if evt.Err != nil {
			return Result{Err: fmt.Errorf("watch %s: %w", evt.Path, evt.Err)}
		}
		return d.Reload()
	}
	return Result{}
}

// Reload reads the store file and replaces the snapshot. The previous
// snapshot is kept when the file cannot be read.
func (d *Dispatcher) Reload() Result {
	entries, err := d.store.Load()
	if err != nil {
		return Result{Err: err}
	}
	d.commands.SetEntries(entries)
	return Result{CommandsUpdated: true}
}
