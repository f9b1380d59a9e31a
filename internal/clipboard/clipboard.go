// Package clipboard bridges the host clipboard. Failures are returned as
// *Error values so callers can surface them without aborting.
package clipboard

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	sysclip "github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
)

// Clipboard reads and writes UTF-8 text.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(text string) error
}

// ErrUnsupported is wrapped when no clipboard backend is available.
var ErrUnsupported = fmt.Errorf("clipboard operations not supported on %s", runtime.GOOS)

// Error describes a failed clipboard operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// System talks to the OS clipboard through xclip/xsel/wl-clipboard, pbcopy or
// the Windows API. With OSC52 set, writes fall back to a terminal escape
// sequence when none of those are available.
type System struct {
	OSC52 bool
	Out   io.Writer

	unsupported bool
	read        func() (string, error)
	write       func(string) error
}

// NewSystem returns the host clipboard bridge.
func NewSystem(osc52Fallback bool) *System {
	return &System{
		OSC52:       osc52Fallback,
		Out:         os.Stderr,
		unsupported: sysclip.Unsupported,
		read:        sysclip.ReadAll,
		write:       sysclip.WriteAll,
	}
}

func (s *System) ReadText() (string, error) {
	if s.unsupported {
		events.Clipboard.Read(0, ErrUnsupported)
		return "", &Error{Op: "read", Err: ErrUnsupported}
	}
	text, err := s.read()
	events.Clipboard.Read(len(text), err)
	if err != nil {
		return "", &Error{Op: "read", Err: err}
	}
	return text, nil
}

func (s *System) WriteText(text string) error {
	if !s.unsupported {
		err := s.write(text)
		events.Clipboard.Write(len(text), "system", err)
		if err == nil {
			return nil
		}
		if !s.OSC52 {
			return &Error{Op: "write", Err: err}
		}
	}
	if !s.OSC52 {
		events.Clipboard.Write(len(text), "none", ErrUnsupported)
		return &Error{Op: "write", Err: ErrUnsupported}
	}
	err := s.writeOSC52(text)
	events.Clipboard.Write(len(text), "osc52", err)
	if err != nil {
		return &Error{Op: "write", Err: err}
	}
	return nil
}

func (s *System) writeOSC52(text string) error {
	out := s.Out
	if out == nil {
		return errors.New("no terminal to receive OSC52 sequence")
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(out)
	return err
}

// Memory is an in-process clipboard used by tests and headless runs.
type Memory struct {
	mu       sync.Mutex
	text     string
	ReadErr  error
	WriteErr error
}

// NewMemory returns a Memory clipboard seeded with text.
func NewMemory(text string) *Memory {
	return &Memory{text: text}
}

func (m *Memory) ReadText() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", &Error{Op: "read", Err: m.ReadErr}
	}
	return m.text, nil
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return &Error{Op: "write", Err: m.WriteErr}
	}
	m.text = text
	return nil
}

// Text returns the current contents without error injection.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
