package ui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/happy-machine/clipboard-warrior/internal/backend"
	"github.com/happy-machine/clipboard-warrior/internal/clipboard"
	"github.com/happy-machine/clipboard-warrior/internal/logging"
	"github.com/happy-machine/clipboard-warrior/internal/menu"
	"github.com/happy-machine/clipboard-warrior/internal/store"
	"github.com/happy-machine/clipboard-warrior/internal/ui/command"
)

type fixture struct {
	path  string
	store store.Store
	clip  *clipboard.Memory
	h     *Harness
}

func writeCommands(t *testing.T, path string, cmds []store.Command) {
	t.Helper()
	if cmds == nil {
		cmds = []store.Command{}
	}
	data, err := json.Marshal(cmds)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func newFixture(t *testing.T, cmds []store.Command, opts Options) *fixture {
	t.Helper()
	dir := t.TempDir()
	logging.Configure(filepath.Join(dir, "test.log"))
	path := filepath.Join(dir, "clipboarddb.json")
	writeCommands(t, path, cmds)
	s := store.NewFileStore(path)
	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	clip := clipboard.NewMemory("")
	opts.Store = s
	opts.Clipboard = clip
	opts.Commands = loaded
	opts.Verbose = true
	return &fixture{path: path, store: s, clip: clip, h: NewHarness(NewModel(opts))}
}

func sampleCommands() []store.Command {
	return []store.Command{
		{ID: "1", Menu: "git", Command: "git status"},
		{ID: "2", Menu: "git", Command: "git stash pop"},
		{ID: "3", Menu: "docker", Command: "docker ps"},
		{ID: "4", Menu: "git", Command: "git log --oneline"},
	}
}

func (f *fixture) loadStore(t *testing.T) []store.Command {
	t.Helper()
	cmds, err := f.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return cmds
}

func TestNewModelStartsOnFirstMenu(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	m := f.h.Model()
	if m.nav.Active != 0 || m.activeMenu() != "git" {
		t.Fatalf("expected active tab 0 (git) at startup, got %d %q", m.nav.Active, m.activeMenu())
	}
	if m.nav.Row != 0 {
		t.Fatalf("expected row 0 at startup, got %d", m.nav.Row)
	}
	if got := m.menus(); strings.Join(got, ",") != "git,docker,Home,Copy,Paste,Delete,Quit" {
		t.Fatalf("unexpected menus %v", got)
	}
}

func TestEmptyStoreActiveZeroIsHome(t *testing.T) {
	f := newFixture(t, nil, Options{})
	m := f.h.Model()
	if m.nav.Active != 0 || m.activeMenu() != menu.LabelHome {
		t.Fatalf("expected active 0 on Home, got %d %q", m.nav.Active, m.activeMenu())
	}
	f.h.Keys("right", "left", "down")
	if m.nav.Active != 0 {
		t.Fatalf("expected to stay on home, got %d", m.nav.Active)
	}
}

func TestTabWrapThroughHome(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	m := f.h.Model()
	f.h.Keys("right")
	if m.activeMenu() != "docker" {
		t.Fatalf("expected docker, got %q", m.activeMenu())
	}
	f.h.Keys("right")
	if m.activeMenu() != menu.LabelHome {
		t.Fatalf("expected home after last menu, got %q", m.activeMenu())
	}
	f.h.Keys("right")
	if m.nav.Active != 0 {
		t.Fatalf("expected wrap to 0, got %d", m.nav.Active)
	}
	f.h.Keys("h", "left")
	if m.nav.Active != 0 {
		t.Fatalf("expected left from home to land on 0, got %d", m.nav.Active)
	}
}

func TestRowSelectionWraps(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	m := f.h.Model()
	f.h.Keys("up")
	if m.nav.Row != 2 {
		t.Fatalf("expected last row 2, got %d", m.nav.Row)
	}
	f.h.Keys("down")
	if m.nav.Row != 0 {
		t.Fatalf("expected wrap to row 0, got %d", m.nav.Row)
	}
}

func TestHomeKeepsRow(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	m := f.h.Model()
	f.h.Keys("down", "h")
	if !m.nav.OnHome(m.menus()) {
		t.Fatalf("expected home tab")
	}
	if m.nav.Row != 1 {
		t.Fatalf("expected row kept at 1, got %d", m.nav.Row)
	}
	f.h.Keys("right")
	if m.nav.Row != 0 {
		t.Fatalf("expected row reset on tab change, got %d", m.nav.Row)
	}
}

func TestCopySelectedCommand(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("down", "c")
	if got := f.clip.Text(); got != "git stash pop" {
		t.Fatalf("expected copied command, got %q", got)
	}
	if info := f.h.Model().currentInfo(); !strings.Contains(info, "Copied") {
		t.Fatalf("expected copy info, got %q", info)
	}
}

func TestCopyOnHomeReportsError(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("h", "c")
	m := f.h.Model()
	if !strings.Contains(m.errMsg, "out of range") {
		t.Fatalf("expected index error, got %q", m.errMsg)
	}
	if f.clip.Text() != "" {
		t.Fatalf("expected clipboard untouched")
	}
}

func TestCopyFailureLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.clip.WriteErr = os.ErrPermission
	f.h.Keys("down")
	m := f.h.Model()
	before := m.nav
	f.h.Keys("c")
	if m.errMsg == "" {
		t.Fatalf("expected error status")
	}
	if m.nav != before {
		t.Fatalf("expected nav unchanged, got %+v want %+v", m.nav, before)
	}
}

func TestPasteAppendsToActiveMenu(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.clip.WriteText("kubectl get pods\n")
	f.h.Keys("right", "p")
	m := f.h.Model()
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	cmds := f.loadStore(t)
	last := cmds[len(cmds)-1]
	if last.Menu != "docker" || last.Command != "kubectl get pods" {
		t.Fatalf("unexpected appended command %+v", last)
	}
	if m.activeMenu() != "docker" {
		t.Fatalf("expected docker to stay active, got %q", m.activeMenu())
	}
	if got := len(m.visibleCommands()); got != 2 {
		t.Fatalf("expected 2 visible commands, got %d", got)
	}
}

func TestPasteEmptyClipboardRejected(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.clip.WriteText("  \n")
	f.h.Keys("p")
	if !strings.Contains(f.h.Model().errMsg, "empty") {
		t.Fatalf("expected empty clipboard error, got %q", f.h.Model().errMsg)
	}
	if got := len(f.loadStore(t)); got != 4 {
		t.Fatalf("expected store unchanged, got %d commands", got)
	}
}

func TestPasteOnReservedTabRejectedByDefault(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.clip.WriteText("rm -rf build")
	m := f.h.Model()
	m.nav.Active = menu.IndexOf(m.menus(), menu.LabelDelete)
	f.h.Keys("p")
	if !strings.Contains(m.errMsg, "reserved") {
		t.Fatalf("expected reserved menu error, got %q", m.errMsg)
	}
	if got := len(f.loadStore(t)); got != 4 {
		t.Fatalf("expected store unchanged, got %d commands", got)
	}
}

func TestPasteOnReservedTabAllowedWithLegacyFlag(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{AllowReservedPaste: true})
	f.clip.WriteText("rm -rf build")
	m := f.h.Model()
	m.nav.Active = menu.IndexOf(m.menus(), menu.LabelDelete)
	f.h.Keys("p")
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	cmds := f.loadStore(t)
	if last := cmds[len(cmds)-1]; last.Menu != menu.LabelDelete {
		t.Fatalf("expected command filed under Delete, got %+v", last)
	}
	menus := m.menus()
	if menu.IndexOf(menus, menu.LabelDelete) >= menu.HomeIndex(menus) {
		t.Fatalf("expected Delete to become a dynamic menu, got %v", menus)
	}
	if m.activeMenu() != menu.LabelDelete || m.onReservedTab() {
		t.Fatalf("expected focus on the new Delete menu, got %q", m.activeMenu())
	}
}

func TestDeleteShrinksVisibleCount(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("down")
	m := f.h.Model()
	before := len(m.visibleCommands())
	f.h.Keys("d")
	if m.errMsg != "" {
		t.Fatalf("unexpected error %q", m.errMsg)
	}
	if got := len(m.visibleCommands()); got != before-1 {
		t.Fatalf("expected %d commands, got %d", before-1, got)
	}
	if m.nav.Row != 0 {
		t.Fatalf("expected row decremented to 0, got %d", m.nav.Row)
	}
	for _, cmd := range f.loadStore(t) {
		if cmd.ID == "2" {
			t.Fatalf("expected command 2 removed")
		}
	}
}

func TestDeleteLastCommandRemovesMenu(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("right", "d")
	m := f.h.Model()
	if menu.IndexOf(m.menus(), "docker") >= 0 {
		t.Fatalf("expected docker menu removed, got %v", m.menus())
	}
	if !m.nav.OnHome(m.menus()) {
		t.Fatalf("expected home after menu vanished, got %q", m.activeMenu())
	}
}

func TestNewMenuFormPastesIntoNewMenu(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.clip.WriteText("make test")
	f.h.Keys("n", "ops", "enter")
	m := f.h.Model()
	if m.mode != ModeBrowse {
		t.Fatalf("expected browse mode after submit, got %v", m.mode)
	}
	if m.activeMenu() != "ops" {
		t.Fatalf("expected new menu active, got %q", m.activeMenu())
	}
	if got := m.visibleCommands(); len(got) != 1 || got[0].Command != "make test" {
		t.Fatalf("unexpected commands %v", got)
	}
}

func TestNewMenuFormCancel(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("n", "ops", "esc")
	m := f.h.Model()
	if m.mode != ModeBrowse || m.menuForm != nil {
		t.Fatalf("expected form closed")
	}
	if got := len(f.loadStore(t)); got != 4 {
		t.Fatalf("expected store unchanged, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.h.Keys("q")
	if !f.h.Quit() {
		t.Fatalf("expected q to quit")
	}
	g := newFixture(t, nil, Options{})
	g.h.Keys("ctrl+c")
	if !g.h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
}

func TestStoreEventReloadsSnapshot(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	f.h.Keys("right")
	updated := append([]store.Command{{ID: "9", Menu: "aws", Command: "aws s3 ls"}}, sampleCommands()...)
	writeCommands(t, f.path, updated)
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindStore, Path: f.path}})
	m := f.h.Model()
	if menu.IndexOf(m.menus(), "aws") != 0 {
		t.Fatalf("expected aws menu first, got %v", m.menus())
	}
	if m.activeMenu() != "docker" {
		t.Fatalf("expected docker to stay active, got %q", m.activeMenu())
	}
}

func TestStoreEventParseErrorKeepsSnapshot(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	if err := os.WriteFile(f.path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindStore, Path: f.path}})
	m := f.h.Model()
	if m.backendLastErr == "" {
		t.Fatalf("expected backend error recorded")
	}
	if len(m.commands.Entries()) != 4 {
		t.Fatalf("expected previous snapshot kept")
	}
}

func TestActionWithoutHandlerReleasesPending(t *testing.T) {
	f := newFixture(t, sampleCommands(), Options{})
	m := f.h.Model()
	m.loading = true
	m.pendingLabel = "missing"
	f.h.Send(m.bus.Execute(m.menuContext(), command.Request{ID: "missing"})())
	if m.loading {
		t.Fatalf("expected pending action released")
	}
	if !strings.Contains(m.errMsg, "no handler") {
		t.Fatalf("expected missing handler error, got %q", m.errMsg)
	}
	f.h.Keys("down", "c")
	if got := f.clip.Text(); got != "git stash pop" {
		t.Fatalf("expected copy to run after the failed action, got %q", got)
	}
}
