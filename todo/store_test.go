package todo

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/amonks/tdo/internal/paths"
	"github.com/amonks/tdo/note"
	"github.com/charmbracelet/log"
)

type fakeEditor struct {
	result string
	err    error
	calls  int
}

func (e *fakeEditor) EditContent(content, path string) (string, error) {
	e.calls++
	return e.result, e.err
}

type testStore struct {
	*Store
	dir    string
	notes  paths.Notes
	editor *fakeEditor
	logs   *bytes.Buffer
}

func newTestStore(t *testing.T) testStore {
	t.Helper()

	dir := t.TempDir()
	resolver := paths.NewNotes(dir)
	editor := &fakeEditor{}
	var logs bytes.Buffer
	logger := log.New(&logs)
	logger.SetLevel(log.DebugLevel)

	notes := note.NewStore(resolver, note.Options{Editor: editor, Logger: logger})
	return testStore{
		Store:  NewStore(resolver, notes, Options{Logger: logger}),
		dir:    dir,
		notes:  resolver,
		editor: editor,
		logs:   &logs,
	}
}

func (s testStore) listPath() string {
	return filepath.Join(s.dir, "todo")
}

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestReadMissingFile(t *testing.T) {
	s := newTestStore(t)

	list, err := s.Read(filepath.Join(s.dir, "does-not-exist"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list.Undone.Len() != 0 || list.Done.Len() != 0 {
		t.Fatalf("expected an empty list, got %d undone and %d done", list.Undone.Len(), list.Done.Len())
	}
}

func TestReadPartitionsAndSkips(t *testing.T) {
	s := newTestStore(t)
	writeLines(t, s.listPath(),
		"[2] second",
		"not a todo",
		"[-1] finished",
		"[1] first",
		"[]broken",
		"[-0] finished later",
	)

	list, err := s.Read(s.listPath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got := messages(&list.Undone); !slices.Equal(got, []string{"second", "first"}) {
		t.Fatalf("unexpected undone %v", got)
	}
	if got := messages(&list.Done); !slices.Equal(got, []string{"finished", "finished later"}) {
		t.Fatalf("unexpected done %v", got)
	}
	if !strings.Contains(s.logs.String(), "skipping line") {
		t.Fatalf("expected skipped lines to be logged at debug, got %q", s.logs.String())
	}
}

func TestReadHandlesCRLF(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.listPath(), []byte("[1] windows\r\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	list, err := s.Read(s.listPath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if list.Undone.Len() != 1 || list.Undone.At(0).Message != "windows" {
		t.Fatalf("unexpected list %v", list.Display())
	}
}

func TestWriteOrdersUndoneFirst(t *testing.T) {
	s := newTestStore(t)
	list := NewList()
	list.Done.Push(doneTodo("done", 1))
	list.Add(New("open", 3))

	if err := s.Write(list, s.listPath()); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := []string{"[3] open", "[-1] done"}
	if got := readLines(t, s.listPath()); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	writeLines(t, s.listPath(),
		"[1] one",
		"[0] unset",
		"[-2] two",
	)

	list, err := s.Read(s.listPath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := s.Write(list, s.listPath()); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := []string{"[1] one", "[0] unset", "[-2] two"}
	if got := readLines(t, s.listPath()); !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSetNote(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)

	if err := s.SetNote(todo, note.New("Note")); err != nil {
		t.Fatalf("set note: %v", err)
	}

	want := "[1]>2c924e3088204ee77ba681f72be3444357932fca Test"
	if got := todo.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := s.NoteContent(todo); got != "Note" {
		t.Fatalf("expected note content, got %q", got)
	}
	if _, err := os.Stat(s.notes.Path(todo.NoteHash())); err != nil {
		t.Fatalf("expected note file: %v", err)
	}
}

func TestRemoveNote(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)
	if err := s.SetNote(todo, note.New("Note")); err != nil {
		t.Fatalf("set note: %v", err)
	}
	path := s.notes.Path(todo.NoteHash())

	if err := s.RemoveNote(todo); err != nil {
		t.Fatalf("remove note: %v", err)
	}
	if todo.HasNote() || todo.NoteHash() != "" {
		t.Fatalf("expected note to be detached")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected note file removed, got %v", err)
	}
	if got := s.NoteContent(todo); got != "" {
		t.Fatalf("expected empty content, got %q", got)
	}
}

func TestRemoveNoteToleratesMissingFile(t *testing.T) {
	s := newTestStore(t)
	todo, err := Parse("[1]>0000000000000000000000000000000000000000 orphan")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := s.RemoveNote(todo); err != nil {
		t.Fatalf("expected missing note file to be tolerated, got %v", err)
	}
	if todo.HasNote() {
		t.Fatalf("expected note detached")
	}
}

func TestAddDependency(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)

	if err := s.AddDependency(todo); err != nil {
		t.Fatalf("add dependency: %v", err)
	}

	if todo.DependencyName() != "900a80c94f076b4ee7006a9747667ccf6878a72b.todo" {
		t.Fatalf("unexpected dependency name %q", todo.DependencyName())
	}
	if !todo.HasDependency() || todo.Dependencies() == nil || todo.Dependencies().Len() != 0 {
		t.Fatalf("expected an empty dependency list")
	}
	info, err := os.Stat(s.DependencyPath(todo))
	if err != nil {
		t.Fatalf("expected dependency file: %v", err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected empty dependency file, got %d bytes", info.Size())
	}

	if err := s.AddDependency(todo); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddDependencyReplacesNote(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)
	if err := s.SetNote(todo, note.New("Note")); err != nil {
		t.Fatalf("set note: %v", err)
	}
	notePath := s.notes.Path(todo.NoteHash())

	if err := s.AddDependency(todo); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	if todo.HasNote() {
		t.Fatalf("expected note dropped")
	}
	if _, err := os.Stat(notePath); !os.IsNotExist(err) {
		t.Fatalf("expected note file removed, got %v", err)
	}
}

func TestAddDependencyCreationFailure(t *testing.T) {
	s := newTestStore(t)
	// A regular file where the notes directory should be.
	if err := os.WriteFile(s.notes.Dir, []byte("in the way"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	todo := New("Test", 1)
	err := s.AddDependency(todo)
	if !errors.Is(err, ErrDependencyCreationFailed) {
		t.Fatalf("expected ErrDependencyCreationFailed, got %v", err)
	}
	if todo.HasDependency() {
		t.Fatalf("expected no dependency after failure")
	}
}

func TestRemoveDependency(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)
	if err := s.AddDependency(todo); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	path := s.DependencyPath(todo)

	s.RemoveDependency(todo)

	if todo.HasDependency() || todo.Dependencies() != nil {
		t.Fatalf("expected dependency detached")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected dependency file removed, got %v", err)
	}

	// Removing again is a no-op.
	s.RemoveDependency(todo)
}

func TestSetNoteReplacesDependency(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)
	if err := s.AddDependency(todo); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	depPath := s.DependencyPath(todo)

	if err := s.SetNote(todo, note.New("Note")); err != nil {
		t.Fatalf("set note: %v", err)
	}
	if todo.HasDependency() || !todo.HasNote() {
		t.Fatalf("expected note to replace dependency")
	}
	if _, err := os.Stat(depPath); !os.IsNotExist(err) {
		t.Fatalf("expected dependency file removed, got %v", err)
	}
}

func TestNestedDependenciesRoundTrip(t *testing.T) {
	s := newTestStore(t)

	parent := New("Read for exams", 1)
	if err := s.AddDependency(parent); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	chapter := New("Chapter one", 2)
	parent.Dependencies().Add(chapter)
	if err := s.AddDependency(chapter); err != nil {
		t.Fatalf("add nested dependency: %v", err)
	}
	chapter.Dependencies().Add(New("Exercises", 3))
	parent.Dependencies().Done.Push(doneTodo("Chapter zero", 1))

	list := NewList()
	list.Add(parent)
	if err := s.Write(list, s.listPath()); err != nil {
		t.Fatalf("write: %v", err)
	}

	read, err := s.Read(s.listPath())
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if read.Undone.Len() != 1 {
		t.Fatalf("expected one top-level todo, got %d", read.Undone.Len())
	}
	top := read.Undone.At(0)
	if top.String() != parent.String() {
		t.Fatalf("expected %q, got %q", parent.String(), top.String())
	}
	deps := top.Dependencies()
	if got := messages(&deps.Undone); !slices.Equal(got, []string{"Chapter one"}) {
		t.Fatalf("unexpected nested undone %v", got)
	}
	if got := messages(&deps.Done); !slices.Equal(got, []string{"Chapter zero"}) {
		t.Fatalf("unexpected nested done %v", got)
	}
	grand := deps.Undone.At(0).Dependencies()
	if grand == nil || grand.Len() != 1 || grand.Undone.At(0).Message != "Exercises" {
		t.Fatalf("expected grandchild list to load, got %+v", grand)
	}

	// One child done, one undone.
	if top.Done() {
		t.Fatalf("expected parent undone")
	}
}

func TestStoreParseLoadsDependency(t *testing.T) {
	s := newTestStore(t)
	writeLines(t, s.notes.Path("abc.todo"), "[1] child")

	todo, err := s.Parse("[2]>abc.todo parent")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if deps := todo.Dependencies(); deps == nil || deps.Len() != 1 {
		t.Fatalf("expected the nested list to load, got %+v", deps)
	}
	if s.DependencyPath(todo) != s.notes.Path("abc.todo") {
		t.Fatalf("unexpected dependency path %s", s.DependencyPath(todo))
	}
}

func TestReadStopsAtDependencyCycle(t *testing.T) {
	s := newTestStore(t)
	writeLines(t, s.notes.Path("loop.todo"), "[1]>loop.todo again")

	list, err := s.Read(s.notes.Path("loop.todo"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	nested := list.Undone.At(0).Dependencies()
	if nested == nil || nested.Len() != 0 {
		t.Fatalf("expected the cycle to stop with an empty list")
	}
	if !strings.Contains(s.logs.String(), "dependency cycle") {
		t.Fatalf("expected a cycle warning, got %q", s.logs.String())
	}
}

func TestWriteSwallowsDependencyFailure(t *testing.T) {
	s := newTestStore(t)

	parent := New("parent", 1)
	if err := s.AddDependency(parent); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	parent.Dependencies().Add(New("child", 1))

	// Replace the dependency file with a non-empty directory so it cannot be written.
	depPath := s.DependencyPath(parent)
	if err := os.Remove(depPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(depPath, "blocker"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	list := NewList()
	list.Add(parent)
	if err := s.Write(list, s.listPath()); err != nil {
		t.Fatalf("expected parent write to succeed, got %v", err)
	}
	if got := readLines(t, s.listPath()); !slices.Equal(got, []string{parent.String()}) {
		t.Fatalf("unexpected parent file %v", got)
	}
	if !strings.Contains(s.logs.String(), "could not write dependency") {
		t.Fatalf("expected a warning, got %q", s.logs.String())
	}
}

func TestEditNote(t *testing.T) {
	s := newTestStore(t)
	todo := New("Test", 1)
	if err := s.SetNote(todo, note.New("Note")); err != nil {
		t.Fatalf("set note: %v", err)
	}
	oldPath := s.notes.Path(todo.NoteHash())

	s.editor.result = "Edited"
	if err := s.EditNote(todo); err != nil {
		t.Fatalf("edit note: %v", err)
	}

	if todo.NoteHash() != note.Hash("Edited") {
		t.Fatalf("expected hash of edited content, got %s", todo.NoteHash())
	}
	if got := s.NoteContent(todo); got != "Edited" {
		t.Fatalf("expected edited content, got %q", got)
	}
	if _, err := os.Stat(oldPath); err != nil {
		t.Fatalf("expected previous note file to remain: %v", err)
	}
}

func TestEditNoteErrors(t *testing.T) {
	s := newTestStore(t)

	if err := s.EditNote(New("no note", 1)); !errors.Is(err, ErrNoNote) {
		t.Fatalf("expected ErrNoNote, got %v", err)
	}

	missing, err := Parse("[1]>0000000000000000000000000000000000000000 missing")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := s.EditNote(missing); !errors.Is(err, note.ErrNotFound) {
		t.Fatalf("expected note.ErrNotFound, got %v", err)
	}
	if s.editor.calls != 0 {
		t.Fatalf("expected editor not to run")
	}
}

func TestAddNoteFromEditor(t *testing.T) {
	s := newTestStore(t)
	s.editor.result = "Written in the editor"
	todo := New("Test", 1)

	if err := s.AddNoteFromEditor(todo); err != nil {
		t.Fatalf("add note: %v", err)
	}
	if got := s.NoteContent(todo); got != "Written in the editor" {
		t.Fatalf("unexpected note content %q", got)
	}
}

func TestAddNoteFromEditorRejectsBlankNote(t *testing.T) {
	s := newTestStore(t)
	s.editor.result = "  \n"
	todo := New("Test", 1)

	err := s.AddNoteFromEditor(todo)
	if !errors.Is(err, ErrNoteEmpty) {
		t.Fatalf("expected ErrNoteEmpty, got %v", err)
	}
	if todo.HasNote() {
		t.Fatal("expected todo to stay without a note")
	}
}
