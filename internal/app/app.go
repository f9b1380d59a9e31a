package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/backend"
	"github.com/happy-machine/clipboard-warrior/internal/clipboard"
	"github.com/happy-machine/clipboard-warrior/internal/store"
	"github.com/happy-machine/clipboard-warrior/internal/ui"
)

// DefaultTick is the input-loop tick interval.
const DefaultTick = 200 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	DBPath             string
	CreateDB           bool
	TickInterval       time.Duration
	Width              int
	Height             int
	ShowFooter         bool
	Verbose            bool
	AllowReservedPaste bool
	OSC52              bool
}

// Run bootstraps and executes the Bubble Tea program. A store that cannot be
// read or parsed aborts before the terminal is touched.
func Run(cfg Config) error {
	s, commands, err := openStore(cfg)
	if err != nil {
		return err
	}
	tick := cfg.TickInterval
	if tick <= 0 {
		tick = DefaultTick
	}
	watcher := backend.NewWatcher(s.Path(), tick)
	defer watcher.Stop()
	model := ui.NewModel(ui.Options{
		Store:              s,
		Clipboard:          clipboard.NewSystem(cfg.OSC52),
		Watcher:            watcher,
		Commands:           commands,
		Width:              cfg.Width,
		Height:             cfg.Height,
		ShowFooter:         cfg.ShowFooter,
		Verbose:            cfg.Verbose,
		AllowReservedPaste: cfg.AllowReservedPaste,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// openStore resolves the store path, creating an empty file when requested,
// and performs the initial load.
func openStore(cfg Config) (store.Store, []store.Command, error) {
	path := cfg.DBPath
	if path == "" {
		path = store.DefaultPath
	}
	if cfg.CreateDB {
		if _, err := store.Init(path); err != nil {
			return nil, nil, fmt.Errorf("init store: %w", err)
		}
	}
	s := store.NewFileStore(path)
	commands, err := s.Load()
	if err != nil {
		return nil, nil, err
	}
	return s, commands, nil
}
