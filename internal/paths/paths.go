package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvDataDir overrides the default data directory when set.
const EnvDataDir = "TDO_DATA_DIR"

const (
	// DefaultListFile is the name of the top-level todo list inside the data dir.
	DefaultListFile = "todo"

	notesDirName = "notes"
	tempNoteName = "tdo-note.md"
)

// HomeDir returns the current user's home directory.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return home, nil
}

// DefaultDataDir returns the directory holding the todo list and its notes.
// The layout matches calcurse, so both tools can share one list.
func DefaultDataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}

	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".local", "share", "calcurse"), nil
}

// DefaultConfigDir returns the directory holding the global config file.
func DefaultConfigDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "tdo"), nil
}

// ListPath returns the path of the named list file inside dataDir.
func ListPath(dataDir, listFile string) string {
	if listFile == "" {
		listFile = DefaultListFile
	}
	return filepath.Join(dataDir, listFile)
}

// Notes resolves note hashes and dependency names to files in one directory.
type Notes struct {
	// Dir is the directory holding one file per note or dependency list.
	Dir string
}

// NewNotes returns the resolver for the notes directory inside dataDir.
func NewNotes(dataDir string) Notes {
	return Notes{Dir: filepath.Join(dataDir, notesDirName)}
}

// Path returns the file for name. An empty name maps to TempPath.
func (n Notes) Path(name string) string {
	if name == "" {
		return n.TempPath()
	}
	return filepath.Join(n.Dir, name)
}

// TempPath returns the fixed path used while a note is open in the editor.
func (n Notes) TempPath() string {
	return filepath.Join(os.TempDir(), tempNoteName)
}
