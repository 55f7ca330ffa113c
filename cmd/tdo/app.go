package main

import (
	"fmt"
	"io"
	"os"

	"github.com/amonks/tdo/internal/config"
	"github.com/amonks/tdo/internal/editor"
	"github.com/amonks/tdo/internal/paths"
	"github.com/amonks/tdo/internal/ui"
	"github.com/amonks/tdo/note"
	"github.com/amonks/tdo/todo"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// app carries everything a command needs to load, change, and save the list.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	editor   editor.Command
	store    *todo.Store
	listPath string
	renderer ui.Renderer
	out      io.Writer
}

func openApp(cmd *cobra.Command) (*app, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr())
	level, err := cfg.LogLevel()
	if err != nil {
		logger.Warn("ignoring log level", "error", err)
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)

	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	listPath, err := cfg.ListPath()
	if err != nil {
		return nil, err
	}

	ed := editor.New(cfg.EditorProgram())
	notesDir := paths.NewNotes(dataDir)
	notes := note.NewStore(notesDir, note.Options{Editor: ed, Logger: logger})
	store := todo.NewStore(notesDir, notes, todo.Options{Logger: logger})

	logger.Debug("opened todo list", "path", listPath, "notes", notesDir.Dir)

	return &app{
		cfg:      cfg,
		logger:   logger,
		editor:   ed,
		store:    store,
		listPath: listPath,
		renderer: ui.NewRenderer(),
		out:      cmd.OutOrStdout(),
	}, nil
}

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "tdo",
		Level:  log.WarnLevel,
	})
}

func (a *app) load() (*todo.List, error) {
	return a.store.Read(a.listPath)
}

func (a *app) save(list *todo.List) error {
	if err := a.store.Write(list, a.listPath); err != nil {
		return fmt.Errorf("write todo list: %w", err)
	}
	return nil
}

// update loads the list, applies fn, and writes the list back when fn
// succeeds.
func (a *app) update(fn func(list *todo.List) error) error {
	list, err := a.load()
	if err != nil {
		return err
	}
	if err := fn(list); err != nil {
		return err
	}
	return a.save(list)
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
