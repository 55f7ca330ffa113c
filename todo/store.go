package todo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	internalstrings "github.com/amonks/tdo/internal/strings"
	"github.com/amonks/tdo/note"
	"github.com/charmbracelet/log"
)

const maxLineBytes = 1024 * 1024

// Resolver maps a dependency name to the path of its list file.
type Resolver interface {
	Path(name string) string
}

// Options configures a Store.
type Options struct {
	// Logger receives warnings about best-effort failures and debug output
	// about skipped lines. Defaults to a logger that discards everything.
	Logger *log.Logger
}

// Store reads and writes todo lists, resolving dependency lists and notes.
type Store struct {
	paths  Resolver
	notes  *note.Store
	logger *log.Logger
}

// NewStore returns a store that keeps dependency lists at the paths given by
// paths and notes in notes.
func NewStore(paths Resolver, notes *note.Store, opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{paths: paths, notes: notes, logger: logger}
}

// Notes returns the note store.
func (s *Store) Notes() *note.Store {
	return s.notes
}

// Read loads the list at path. A missing file is an empty list. Lines that
// are not todos are skipped. Each todo goes to the undone or done partition
// according to its own done flag, in file order. Dependency lists are read
// recursively.
func (s *Store) Read(path string) (*List, error) {
	return s.read(path, map[string]bool{})
}

func (s *Store) read(path string, ancestors map[string]bool) (*List, error) {
	list := NewList()
	if ancestors[path] {
		s.logger.Warn("dependency cycle, not descending", "path", path)
		return list, nil
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return list, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open todo list: %w", err)
	}
	defer f.Close()

	ancestors[path] = true
	defer delete(ancestors, path)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := internalstrings.TrimTrailingCarriageReturn(scanner.Text())
		t, err := s.parse(line, ancestors)
		if err != nil {
			s.logger.Debug("skipping line", "path", path, "line", lineNumber)
			continue
		}
		if t.Marked() {
			list.Done.Push(t)
		} else {
			list.Undone.Push(t)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read todo list: %w", err)
	}

	return list, nil
}

// Parse decodes a storage line like the package-level Parse, and also loads
// the nested list of a dependency todo.
func (s *Store) Parse(line string) (*Todo, error) {
	return s.parse(line, map[string]bool{})
}

func (s *Store) parse(line string, ancestors map[string]bool) (*Todo, error) {
	t, err := Parse(line)
	if err != nil {
		return nil, err
	}
	if t.HasDependency() {
		deps, err := s.read(s.DependencyPath(t), ancestors)
		if err != nil {
			s.logger.Warn("could not read dependency", "name", t.DependencyName(), "error", err)
			deps = NewList()
		}
		t.attachment.deps = deps
	}
	return t, nil
}

// Write stores the list at path, undone todos first, replacing the file.
// Each dependency list is written to its own file first; a failure there is
// logged and does not stop the parent from being written.
func (s *Store) Write(list *List, path string) error {
	var buf bytes.Buffer
	for _, arr := range []*Array{&list.Undone, &list.Done} {
		for _, t := range arr.All() {
			if deps := t.Dependencies(); deps != nil {
				depPath := s.DependencyPath(t)
				if err := s.Write(deps, depPath); err != nil {
					s.logger.Warn("could not write dependency", "name", t.DependencyName(), "path", depPath, "error", err)
				}
			}
			buf.WriteString(t.String())
			buf.WriteByte('\n')
		}
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic replaces path with data through a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create list dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp list file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp list file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename list file: %w", err)
	}
	return nil
}

// DependencyPath returns the file holding t's nested list, or "" without a
// dependency.
func (s *Store) DependencyPath(t *Todo) string {
	if !t.HasDependency() {
		return ""
	}
	return s.paths.Path(t.DependencyName())
}

// AddDependency attaches a new, empty dependency list to t, dropping any note.
// The list's name is derived from t.Hash and its file is created empty.
func (s *Store) AddDependency(t *Todo) error {
	if t.HasDependency() {
		return ErrAlreadyExists
	}
	if t.HasNote() {
		if err := s.RemoveNote(t); err != nil {
			s.logger.Warn("could not remove note", "hash", t.NoteHash(), "error", err)
			t.attachment = attachment{}
		}
	}

	name := dependencyNameFor(t.Hash())
	path := s.paths.Path(name)
	if err := createEmpty(path); err != nil {
		return fmt.Errorf("%w: %w", ErrDependencyCreationFailed, err)
	}

	deps, err := s.Read(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDependencyCreationFailed, err)
	}
	t.attachment = dependencyAttachment(name, deps)
	return nil
}

func createEmpty(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// RemoveDependency deletes t's dependency file and detaches the nested list.
// It does nothing when t has no dependency.
func (s *Store) RemoveDependency(t *Todo) {
	if !t.HasDependency() {
		return
	}
	path := s.DependencyPath(t)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("could not remove dependency file", "path", path, "error", err)
	}
	t.attachment = attachment{}
}

// SetNote saves n and attaches it to t, dropping any dependency.
func (s *Store) SetNote(t *Todo, n note.Note) error {
	s.RemoveDependency(t)
	t.attachment = noteAttachment(n.Hash())
	if err := s.notes.Save(n); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

// AddNoteFromEditor writes a new note in the editor and attaches it to t.
// A blank note is rejected with ErrNoteEmpty and leaves t unchanged.
func (s *Store) AddNoteFromEditor(t *Todo) error {
	n, err := s.notes.FromEditor()
	if err != nil {
		return err
	}
	if strings.TrimSpace(n.Content()) == "" {
		return ErrNoteEmpty
	}
	return s.SetNote(t, n)
}

// EditNote opens t's note in the editor and attaches the result under its
// new hash. The file for the previous hash is left in place, since other
// todos may share identical content.
func (s *Store) EditNote(t *Todo) error {
	if !t.HasNote() {
		return ErrNoNote
	}
	current, err := s.notes.Load(t.NoteHash())
	if err != nil {
		return err
	}
	edited, err := s.notes.Edit(current)
	if err != nil {
		return err
	}
	t.attachment = noteAttachment(edited.Hash())
	if err := s.notes.Save(edited); err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	return nil
}

// RemoveNote deletes t's note file and detaches it. A note file that is
// already gone is not an error.
func (s *Store) RemoveNote(t *Todo) error {
	if !t.HasNote() {
		return nil
	}
	if err := s.notes.Remove(t.NoteHash()); err != nil {
		return err
	}
	t.attachment = attachment{}
	return nil
}

// NoteContent returns the text of t's note, or "" when t has none or it
// cannot be loaded.
func (s *Store) NoteContent(t *Todo) string {
	if !t.HasNote() {
		return ""
	}
	n, err := s.notes.Load(t.NoteHash())
	if err != nil {
		return ""
	}
	return n.Content()
}
