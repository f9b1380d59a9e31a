package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a menu action into a Bubble Tea command while emitting trace
// logs. The command's message is the action's menu.ActionResult; a request
// without a handler still yields a result carrying an error.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return menu.ActionResult{ID: req.ID, Err: fmt.Errorf("no handler for action %q", req.ID)}
		}
		res := req.Handler(ctx)
		if res.ID == "" {
			res.ID = req.ID
		}
		status := "ok"
		if res.Err != nil {
			status = "error"
		}
		events.Command.Result(req.ID, req.Label, status)
		return res
	}
}
