// Package editor provides utilities for interactive editing with $EDITOR.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"golang.org/x/term"
)

// ErrNoProgram is returned when a Command has no program to run.
var ErrNoProgram = errors.New("no editor program configured")

// IsInteractive returns true if stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// DefaultProgram returns $EDITOR, falling back to notepad on Windows and vi
// everywhere else.
func DefaultProgram() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	return "vi"
}

// Command runs an external editor against a file.
type Command struct {
	// Program is the editor command line. It may include arguments, such
	// as "code --wait"; the file path is appended.
	Program string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// New returns a Command for program attached to the process's stdio.
func New(program string) Command {
	return Command{
		Program: program,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Edit opens path in the editor and waits for it to exit.
// Returns nil if the editor exits with status 0, otherwise returns an error.
func (c Command) Edit(path string) error {
	parts := strings.Fields(c.Program)
	if len(parts) == 0 {
		return ErrNoProgram
	}

	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}

	return nil
}

// EditContent writes content to path, opens it in the editor, and returns
// what the file holds once the editor exits. The file is removed afterwards.
func (c Command) EditContent(content, path string) (string, error) {
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write temp file: %w", err)
	}
	defer os.Remove(path)

	if err := c.Edit(path); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read edited file: %w", err)
	}
	return string(edited), nil
}
