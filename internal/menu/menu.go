package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/happy-machine/clipboard-warrior/internal/clipboard"
	"github.com/happy-machine/clipboard-warrior/internal/store"
)

// ErrEmptyClipboard is returned when a paste finds nothing worth saving.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// Context carries what an action needs to run against the store and clipboard.
type Context struct {
	Store         store.Store
	Clipboard     clipboard.Clipboard
	Menu          string
	Target        store.Command
	AllowReserved bool
}

// Action performs one user operation and reports its outcome.
type Action func(Context) ActionResult

// ActionResult communicates the outcome of executing an action. Changed is
// set when the store was mutated and must be reloaded; Focus names the menu
// the UI should select afterwards.
type ActionResult struct {
	ID      string
	Info    string
	Err     error
	Focus   string
	Changed bool
}

const (
	ActionCopy    = "copy"
	ActionPaste   = "paste"
	ActionDelete  = "delete"
	ActionNewMenu = "new-menu"
)

// ActionHandlers maps action identifiers to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		ActionCopy:    CopyAction,
		ActionPaste:   PasteAction,
		ActionDelete:  DeleteAction,
		ActionNewMenu: PasteAction,
	}
}

// CopyAction writes the target command's text to the clipboard.
func CopyAction(ctx Context) ActionResult {
	res := ActionResult{ID: ActionCopy}
	if ctx.Clipboard == nil {
		res.Err = errors.New("no clipboard configured")
		return res
	}
	if err := ctx.Clipboard.WriteText(ctx.Target.Command); err != nil {
		res.Err = fmt.Errorf("copy: %w", err)
		return res
	}
	res.Info = fmt.Sprintf("Copied %s", Preview(ctx.Target.Command, 40))
	return res
}

// PasteAction saves the clipboard contents as a new command under ctx.Menu.
func PasteAction(ctx Context) ActionResult {
	res := ActionResult{ID: ActionPaste, Focus: ctx.Menu}
	if err := ValidateMenuName(ctx.Menu, ctx.AllowReserved); err != nil {
		res.Err = fmt.Errorf("paste: %w", err)
		return res
	}
	if ctx.Clipboard == nil {
		res.Err = errors.New("no clipboard configured")
		return res
	}
	text, err := ctx.Clipboard.ReadText()
	if err != nil {
		res.Err = fmt.Errorf("paste: %w", err)
		return res
	}
	text = CleanClipboardText(text)
	if strings.TrimSpace(text) == "" {
		res.Err = fmt.Errorf("paste: %w", ErrEmptyClipboard)
		return res
	}
	if _, err := ctx.Store.Append(ctx.Menu, text); err != nil {
		res.Err = fmt.Errorf("paste: %w", err)
		return res
	}
	res.Changed = true
	res.Info = fmt.Sprintf("Saved %s to %s", Preview(text, 40), ctx.Menu)
	return res
}

// DeleteAction removes the target command by id. Targets without an id fall
// back to removal by text.
func DeleteAction(ctx Context) ActionResult {
	res := ActionResult{ID: ActionDelete, Focus: ctx.Menu}
	var err error
	if ctx.Target.ID == "" {
		err = ctx.Store.RemoveByText(ctx.Menu, ctx.Target.Command)
	} else {
		err = ctx.Store.Remove(ctx.Target.ID)
	}
	if err != nil {
		res.Err = fmt.Errorf("delete: %w", err)
		return res
	}
	res.Changed = true
	res.Info = fmt.Sprintf("Deleted %s", Preview(ctx.Target.Command, 40))
	return res
}

// ValidateMenuName rejects blank names and, unless allowReserved is set, the
// reserved tab labels.
func ValidateMenuName(name string, allowReserved bool) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("menu name is empty")
	}
	if !allowReserved && IsReserved(name) {
		return fmt.Errorf("%w %q", ErrReservedMenu, name)
	}
	return nil
}

// CleanClipboardText drops terminal escape sequences and a single trailing
// newline, which shells add when output is copied.
func CleanClipboardText(text string) string {
	text = ansi.Strip(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.TrimSuffix(text, "\n")
}

// Preview returns the first line of text quoted and shortened to max runes.
func Preview(text string, max int) string {
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx] + " …"
	}
	runes := []rune(line)
	if max > 1 && len(runes) > max {
		line = string(runes[:max-1]) + "…"
	}
	return fmt.Sprintf("%q", line)
}
