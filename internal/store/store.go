// Package store persists commands as a JSON array in a single flat file. Every
// mutation reloads the file, applies the change, and rewrites the whole file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
)

// DefaultPath is the store location used when no override is configured.
const DefaultPath = "./clipboarddb.json"

// Command is a saved clipboard snippet tagged with the menu it belongs to.
type Command struct {
	ID      string `json:"id,omitempty"`
	Command string `json:"command"`
	Menu    string `json:"menu"`
}

// ErrNotFound is returned when a removal target does not exist.
var ErrNotFound = errors.New("command not found")

// ReadError reports a missing or unreadable store file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading the DB file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports store content that is not a JSON array of commands.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("error parsing the DB file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Store is the data-access surface used by the UI and actions.
type Store interface {
	Path() string
	Load() ([]Command, error)
	Append(menu, command string) ([]Command, error)
	Remove(id string) error
	RemoveByText(menu, text string) error
}

// legacyNamespace seeds ids for entries written before ids existed.
var legacyNamespace = uuid.MustParse("6f1c9a52-3b7e-4d3a-9c55-0e3d8b1f2a47")

type fileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a Store backed by the JSON file at path.
func NewFileStore(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Path() string {
	return s.path
}

func (s *fileStore) Load() ([]Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands, err := s.read()
	events.Store.Load(s.path, len(commands), err)
	return commands, err
}

func (s *fileStore) Append(menu, command string) ([]Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands, err := s.read()
	if err != nil {
		return nil, err
	}
	commands = append(commands, Command{
		ID:      uuid.NewString(),
		Command: command,
		Menu:    menu,
	})
	if err := s.write(commands); err != nil {
		return nil, err
	}
	events.Store.Append(s.path, menu, len(commands))
	return cloneCommands(commands), nil
}

func (s *fileStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands, err := s.read()
	if err != nil {
		return err
	}
	for i, cmd := range commands {
		if cmd.ID != id {
			continue
		}
		commands = append(commands[:i], commands[i+1:]...)
		if err := s.write(commands); err != nil {
			return err
		}
		events.Store.Remove(s.path, id, cmd.Menu)
		return nil
	}
	return fmt.Errorf("remove %s: %w", id, ErrNotFound)
}

// RemoveByText drops the first command anywhere in the store whose text
// equals text. menu only labels the error; it does not narrow the scan.
func (s *fileStore) RemoveByText(menu, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	commands, err := s.read()
	if err != nil {
		return err
	}
	for i, cmd := range commands {
		if cmd.Command != text {
			continue
		}
		commands = append(commands[:i], commands[i+1:]...)
		if err := s.write(commands); err != nil {
			return err
		}
		events.Store.Remove(s.path, cmd.ID, cmd.Menu)
		return nil
	}
	return fmt.Errorf("remove %q from %s: %w", text, menu, ErrNotFound)
}

func (s *fileStore) read() ([]Command, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &ReadError{Path: s.path, Err: err}
	}
	var commands []Command
	if err := json.Unmarshal(data, &commands); err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	for i := range commands {
		if commands[i].ID == "" {
			commands[i].ID = legacyID(i, commands[i])
		}
	}
	return commands, nil
}

// write replaces the store file through a sibling temp file and rename.
func (s *fileStore) write(commands []Command) error {
	if commands == nil {
		commands = []Command{}
	}
	data, err := json.MarshalIndent(commands, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Chmod(fileMode(s.path)); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

// Init creates an empty store at path when none exists yet.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, &ReadError{Path: path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("create store directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create store %s: %w", path, err)
	}
	if _, err := f.WriteString("[]\n"); err != nil {
		f.Close()
		return false, fmt.Errorf("create store %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("create store %s: %w", path, err)
	}
	events.Store.Init(path)
	return true, nil
}

func legacyID(pos int, cmd Command) string {
	seed := fmt.Sprintf("%d\x00%s\x00%s", pos, cmd.Menu, cmd.Command)
	return uuid.NewSHA1(legacyNamespace, []byte(seed)).String()
}

func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0o600
}

func cloneCommands(commands []Command) []Command {
	if len(commands) == 0 {
		return nil
	}
	dup := make([]Command, len(commands))
	copy(dup, commands)
	return dup
}
