package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
)

const formNewMenu = "new-menu"

// NewMenuForm asks for a menu name before the clipboard is pasted into it.
type NewMenuForm struct {
	input         textinput.Model
	existing      []string
	allowReserved bool
	err           string
	title         string
	help          string
}

// NewNewMenuForm builds the form. existing lists the current menu names so an
// existing name can be reported as a plain paste target.
func NewNewMenuForm(existing []string, allowReserved bool) *NewMenuForm {
	ti := textinput.New()
	ti.Placeholder = "menu-name"
	ti.CharLimit = 64
	ti.Focus()
	events.UI.FormOpen(formNewMenu)
	return &NewMenuForm{
		input:         ti,
		existing:      append([]string(nil), existing...),
		allowReserved: allowReserved,
		title:         "Paste clipboard into a new menu",
		help:          "Press Enter to save. Esc to cancel.",
	}
}

func (f *NewMenuForm) Title() string     { return f.title }
func (f *NewMenuForm) Help() string      { return f.help }
func (f *NewMenuForm) Error() string     { return f.err }
func (f *NewMenuForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *NewMenuForm) InputView() string { return f.input.View() }

// Update feeds msg to the text input. It reports done when a valid name was
// submitted and cancel when the form should close without action.
func (f *NewMenuForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		f.err = ""
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
			}
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			events.UI.FormCancel(formNewMenu, "escape")
			return nil, false, true
		case tea.KeyEnter:
			name := f.Value()
			if name == "" {
				events.UI.FormCancel(formNewMenu, "empty")
				return nil, false, true
			}
			if err := ValidateMenuName(name, f.allowReserved); err != nil {
				f.err = err.Error()
				return nil, false, false
			}
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

// DisableBlink keeps the input cursor solid.
func (f *NewMenuForm) DisableBlink() {
	f.input.Cursor.SetMode(cursor.CursorStatic)
}

// Exists reports whether the entered name is already a menu.
func (f *NewMenuForm) Exists() bool {
	return IndexOf(f.existing, f.Value()) >= 0
}

// PendingLabel describes the submission for status output.
func (f *NewMenuForm) PendingLabel() string {
	if f.Exists() {
		return fmt.Sprintf("paste → %s", f.Value())
	}
	return fmt.Sprintf("new menu %s", f.Value())
}
