package note

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type dirResolver struct {
	dir string
}

func (r dirResolver) Path(name string) string {
	if name == "" {
		return r.TempPath()
	}
	return filepath.Join(r.dir, name)
}

func (r dirResolver) TempPath() string {
	return filepath.Join(r.dir, "edit.tmp")
}

// fakeEditor records what it was given and replies with a canned result.
type fakeEditor struct {
	result  string
	err     error
	gotText string
	gotPath string
}

func (e *fakeEditor) EditContent(content, path string) (string, error) {
	e.gotText = content
	e.gotPath = path
	return e.result, e.err
}

func TestHash(t *testing.T) {
	if got := New("Note").Hash(); got != "2c924e3088204ee77ba681f72be3444357932fca" {
		t.Fatalf("unexpected hash %s", got)
	}
	if New("a").Hash() == New("b").Hash() {
		t.Fatalf("expected distinct content to hash differently")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dirResolver{dir: filepath.Join(dir, "notes")}, Options{})

	n := New("Remember the milk")
	if err := store.Save(n); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Saving identical content again is harmless.
	if err := store.Save(New("Remember the milk")); err != nil {
		t.Fatalf("save again: %v", err)
	}

	loaded, err := store.Load(n.Hash())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != n {
		t.Fatalf("expected %+v, got %+v", n, loaded)
	}

	entries, err := os.ReadDir(filepath.Join(dir, "notes"))
	if err != nil {
		t.Fatalf("read notes dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != n.Hash() {
		t.Fatalf("expected a single file named by hash, got %v", entries)
	}
}

func TestLoadMissing(t *testing.T) {
	store := NewStore(dirResolver{dir: t.TempDir()}, Options{})

	_, err := store.Load("0000")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = store.Load("")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty hash, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	var logs bytes.Buffer
	store := NewStore(dirResolver{dir: t.TempDir()}, Options{Logger: log.New(&logs)})

	n := New("gone soon")
	if err := store.Save(n); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Remove(n.Hash()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(store.Path(n.Hash())); !os.IsNotExist(err) {
		t.Fatalf("expected note file to be gone, got %v", err)
	}

	if err := store.Remove(n.Hash()); err != nil {
		t.Fatalf("expected second remove to be tolerated, got %v", err)
	}
	if !strings.Contains(logs.String(), "already removed") {
		t.Fatalf("expected a warning for the missing file, got %q", logs.String())
	}
}

func TestEdit(t *testing.T) {
	resolver := dirResolver{dir: t.TempDir()}
	editor := &fakeEditor{result: "Edited"}
	store := NewStore(resolver, Options{Editor: editor})

	edited, err := store.Edit(New("Original"))
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if editor.gotText != "Original" {
		t.Fatalf("expected editor to receive current content, got %q", editor.gotText)
	}
	if editor.gotPath != resolver.TempPath() {
		t.Fatalf("expected editor to use temp path, got %q", editor.gotPath)
	}
	if edited.Content() != "Edited" || edited.Hash() != Hash("Edited") {
		t.Fatalf("unexpected edited note %+v", edited)
	}
}

func TestFromEditor(t *testing.T) {
	editor := &fakeEditor{result: "fresh"}
	store := NewStore(dirResolver{dir: t.TempDir()}, Options{Editor: editor})

	n, err := store.FromEditor()
	if err != nil {
		t.Fatalf("from editor: %v", err)
	}
	if editor.gotText != "" {
		t.Fatalf("expected empty starting content, got %q", editor.gotText)
	}
	if n.Content() != "fresh" {
		t.Fatalf("expected fresh, got %q", n.Content())
	}
}

func TestEditErrors(t *testing.T) {
	store := NewStore(dirResolver{dir: t.TempDir()}, Options{})
	if _, err := store.FromEditor(); !errors.Is(err, ErrNoEditor) {
		t.Fatalf("expected ErrNoEditor, got %v", err)
	}

	boom := errors.New("boom")
	store = NewStore(dirResolver{dir: t.TempDir()}, Options{Editor: &fakeEditor{err: boom}})
	if _, err := store.Edit(New("x")); !errors.Is(err, boom) {
		t.Fatalf("expected editor error, got %v", err)
	}
}
