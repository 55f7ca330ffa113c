package note

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotFound is returned when no note is stored under a hash.
	ErrNotFound = errors.New("note not found")

	// ErrNoEditor is returned when an edit is requested from a store without an editor.
	ErrNoEditor = errors.New("no editor configured")
)

// Resolver maps logical names to storage paths.
type Resolver interface {
	// Path returns the storage path for name.
	Path(name string) string

	// TempPath returns the fixed path used for editing sessions.
	TempPath() string
}

// Editor lets the user change text through an external program.
type Editor interface {
	// EditContent writes content to path, blocks until the user finishes
	// editing it, removes the file, and returns the final text.
	EditContent(content, path string) (string, error)
}

// Options configures a Store.
type Options struct {
	// Editor is used by FromEditor and Edit. Those calls fail with
	// ErrNoEditor when it is nil.
	Editor Editor

	// Logger receives warnings about tolerated failures. Defaults to a
	// logger that discards everything.
	Logger *log.Logger
}

// Store saves and loads notes under the paths given by a Resolver.
type Store struct {
	paths  Resolver
	editor Editor
	logger *log.Logger
}

// NewStore returns a note store resolving paths with paths.
func NewStore(paths Resolver, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{paths: paths, editor: opts.Editor, logger: logger}
}

// Path returns the storage path for the note with the given hash.
func (s *Store) Path(hash string) string {
	return s.paths.Path(hash)
}

// Save writes the note to the path derived from its hash. Saving the same
// content again rewrites the same file with the same bytes.
func (s *Store) Save(n Note) error {
	path := s.Path(n.Hash())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create notes dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(n.Content()), 0o644); err != nil {
		return fmt.Errorf("write note %s: %w", n.Hash(), err)
	}
	return nil
}

// Load reads the note stored under hash.
func (s *Store) Load(hash string) (Note, error) {
	if hash == "" {
		return Note{}, ErrNotFound
	}
	data, err := os.ReadFile(s.Path(hash))
	if errors.Is(err, fs.ErrNotExist) {
		return Note{}, fmt.Errorf("%w: %s", ErrNotFound, hash)
	}
	if err != nil {
		return Note{}, fmt.Errorf("read note %s: %w", hash, err)
	}
	return New(string(data)), nil
}

// Remove deletes the stored file for the note with the given hash.
// A file that is already gone is not an error.
func (s *Store) Remove(hash string) error {
	if hash == "" {
		return nil
	}
	path := s.Path(hash)
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("note file already removed", "hash", hash, "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("remove note %s: %w", hash, err)
	}
	return nil
}

// FromEditor opens an empty editing session and returns the written text as
// a new note. The note is not saved.
func (s *Store) FromEditor() (Note, error) {
	return s.edit("")
}

// Edit opens an editing session prefilled with n and returns the result as a
// new note. Persisting it, and dropping the old hash, is up to the caller.
func (s *Store) Edit(n Note) (Note, error) {
	return s.edit(n.Content())
}

func (s *Store) edit(content string) (Note, error) {
	if s.editor == nil {
		return Note{}, ErrNoEditor
	}
	edited, err := s.editor.EditContent(content, s.paths.TempPath())
	if err != nil {
		return Note{}, fmt.Errorf("edit note: %w", err)
	}
	return New(edited), nil
}
