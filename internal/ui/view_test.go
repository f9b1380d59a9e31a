package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/happy-machine/clipboard-warrior/internal/store"
)

func TestViewHomeShowsBannerAndTabs(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("h")
	view := ansi.Strip(f.h.View())
	if !strings.Contains(view, "Clipboard warrior makes it easy") {
		t.Fatalf("expected usage text on home, got %q", view)
	}
	if !strings.Contains(view, "paste to new menu") {
		t.Fatalf("expected key reference on home, got %q", view)
	}
	firstLine := strings.SplitN(view, "\n", 2)[0]
	for _, label := range []string{"Menu", "git", "docker", "Home", "Copy", "Paste", "Delete", "Quit"} {
		if !strings.Contains(firstLine, label) {
			t.Fatalf("expected %q in tab bar, got %q", label, firstLine)
		}
	}
}

func TestViewListsActiveMenuCommands(t *testing.T) {
	cmds := append(sampleCommands(), store.Command{ID: "5", Menu: "git", Command: "git commit -m 'x'\ngit push"})
	f := newFixture(t, cmds, Options{})
	f.h.Keys("down")
	view := ansi.Strip(f.h.View())
	if !strings.Contains(view, "▌ git stash pop") {
		t.Fatalf("expected selected command in view, got %q", view)
	}
	if strings.Contains(view, "docker ps") {
		t.Fatalf("expected other menus hidden, got %q", view)
	}
	if !strings.Contains(view, "git commit -m 'x' ⏎") {
		t.Fatalf("expected multi-line marker, got %q", view)
	}
	if strings.Contains(view, "git push") {
		t.Fatalf("expected continuation lines hidden, got %q", view)
	}
}

func TestViewTruncatesToWidth(t *testing.T) {
	cmds := []store.Command{{ID: "1", Menu: "m", Command: strings.Repeat("x", 80)}}
	f := newFixture(t, cmds, Options{Width: 30, Height: 12})
	for _, line := range strings.Split(f.h.View(), "\n") {
		if w := ansi.StringWidth(line); w > 30 {
			t.Fatalf("expected lines within 30 cells, got %d: %q", w, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(f.h.View()), "…") {
		t.Fatalf("expected ellipsis on truncated command")
	}
}

func TestViewScrollsToSelectedRow(t *testing.T) {
	cmds := make([]store.Command, 0, 20)
	for i := 0; i < 20; i++ {
		cmds = append(cmds, store.Command{ID: string(rune('a' + i)), Menu: "m", Command: "cmd-" + string(rune('a'+i))})
	}
	f := newFixture(t, cmds, Options{Width: 40, Height: 10})
	f.h.Keys("up")
	view := ansi.Strip(f.h.View())
	if !strings.Contains(view, "cmd-t") {
		t.Fatalf("expected last row visible, got %q", view)
	}
	if strings.Contains(view, "cmd-a") {
		t.Fatalf("expected first row scrolled out, got %q", view)
	}
}

func TestViewShowsErrorStatus(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("h", "c")
	if view := ansi.Strip(f.h.View()); !strings.Contains(view, "Error: ") {
		t.Fatalf("expected error status, got %q", view)
	}
}

func TestViewFooterHelp(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{ShowFooter: true})
	view := ansi.Strip(f.h.View())
	if !strings.Contains(view, "copy") || !strings.Contains(view, "quit") {
		t.Fatalf("expected key help in footer, got %q", view)
	}
}

func TestViewNewMenuForm(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("n")
	view := ansi.Strip(f.h.View())
	if !strings.Contains(view, "Paste clipboard into a new menu") {
		t.Fatalf("expected form title, got %q", view)
	}
}
