package command

import (
	"errors"
	"testing"

	"github.com/happy-machine/clipboard-warrior/internal/menu"
)

func TestExecuteReturnsActionResult(t *testing.T) {
	bus := New()
	var seen menu.Context
	cmd := bus.Execute(menu.Context{Menu: "git"}, Request{
		ID:    "custom",
		Label: "run",
		Handler: func(ctx menu.Context) menu.ActionResult {
			seen = ctx
			return menu.ActionResult{Info: "done"}
		},
	})
	if cmd == nil {
		t.Fatalf("expected command")
	}
	res, ok := cmd().(menu.ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult message")
	}
	if seen.Menu != "git" {
		t.Fatalf("expected context passed through, got %q", seen.Menu)
	}
	if res.ID != "custom" || res.Info != "done" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestExecuteKeepsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	cmd := New().Execute(menu.Context{}, Request{
		ID: menu.ActionCopy,
		Handler: func(menu.Context) menu.ActionResult {
			return menu.ActionResult{ID: menu.ActionCopy, Err: boom}
		},
	})
	res := cmd().(menu.ActionResult)
	if !errors.Is(res.Err, boom) {
		t.Fatalf("expected boom, got %v", res.Err)
	}
}

func TestExecuteWithoutHandler(t *testing.T) {
	cmd := New().Execute(menu.Context{}, Request{ID: "noop"})
	res, ok := cmd().(menu.ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult message")
	}
	if res.ID != "noop" || res.Err == nil {
		t.Fatalf("expected error result for noop, got %+v", res)
	}
}
