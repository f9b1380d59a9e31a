package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFilterNarrowsActiveMenu(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("/", "stash")
	m := f.h.Model()
	if m.mode != ModeFilter {
		t.Fatalf("expected filter mode")
	}
	got := m.visibleCommands()
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("expected only stash command, got %v", got)
	}
	if prompt := ansi.Strip(m.filterPrompt()); !strings.Contains(prompt, "stash") {
		t.Fatalf("expected query in prompt, got %q", prompt)
	}
}

func TestFilterEnterKeepsQueryAndCopiesMatch(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("/", "log", "enter", "c")
	m := f.h.Model()
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode after enter")
	}
	if m.nav.Filter != "log" {
		t.Fatalf("expected filter kept, got %q", m.nav.Filter)
	}
	if got := f.clip.Text(); got != "git log --oneline" {
		t.Fatalf("expected filtered command copied, got %q", got)
	}
}

func TestFilterEscapeClears(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("/", "stash", "esc")
	m := f.h.Model()
	if m.mode != ModeBrowse || m.nav.Filter != "" {
		t.Fatalf("expected filter cleared, got mode=%v filter=%q", m.mode, m.nav.Filter)
	}
	if got := len(m.visibleCommands()); got != 3 {
		t.Fatalf("expected all git commands, got %d", got)
	}
}

func TestFilterBackspaceAndQuitRuneIsText(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("/", "sq", "backspace")
	m := f.h.Model()
	if f.h.Quit() {
		t.Fatalf("expected q to be typed into the filter")
	}
	if m.nav.Filter != "s" {
		t.Fatalf("expected filter s, got %q", m.nav.Filter)
	}
}

func TestFilterIgnoredOnHome(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("h", "/")
	if f.h.Model().mode != ModeBrowse {
		t.Fatalf("expected filter to stay closed on home")
	}
}
