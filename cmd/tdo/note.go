package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/amonks/tdo/internal/editor"
	"github.com/amonks/tdo/internal/markdown"
	internalstrings "github.com/amonks/tdo/internal/strings"
	"github.com/amonks/tdo/internal/ui"
	"github.com/amonks/tdo/note"
	"github.com/amonks/tdo/todo"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage the note attached to a todo",
}

var noteSetCmd = &cobra.Command{
	Use:   "set <path> [text|-]",
	Short: "Attach a note to a todo",
	Long: `Attach a note to a todo, replacing its note or subtasks.

Pass the note as an argument, or "-" to read it from stdin. Without text the
note is written in $EDITOR when running interactively, or with --edit.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNoteSet,
}

var noteSetEdit bool

var noteShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print a todo's note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteShow,
}

var noteShowRaw bool

var noteEditCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Edit a todo's note in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteEdit,
}

var noteRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a todo's note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRm,
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteSetCmd, noteShowCmd, noteEditCmd, noteRmCmd)

	noteSetCmd.Flags().BoolVarP(&noteSetEdit, "edit", "e", false, "Open $EDITOR even when not interactive")
	noteShowCmd.Flags().BoolVar(&noteShowRaw, "raw", false, "Print the note without markdown rendering")
}

func readNoteText(value string, stdin io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	input, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read note from stdin: %w", err)
	}
	return internalstrings.TrimTrailingNewlines(internalstrings.NormalizeNewlines(string(input))), nil
}

func runNoteSet(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}

	var text string
	useEditor := len(args) == 1
	if useEditor && !noteSetEdit && !editor.IsInteractive() {
		return fmt.Errorf("note text is required when not interactive (pass text, \"-\", or --edit)")
	}
	if !useEditor {
		text, err = readNoteText(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return todo.ErrNoteEmpty
		}
	}

	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if useEditor {
			err = a.store.AddNoteFromEditor(target.todo)
		} else {
			err = a.store.SetNote(target.todo, note.New(text))
		}
		if err != nil {
			return err
		}
		a.printf("Noted %s: %s\n", target.path, target.todo.NoteHash())
		return nil
	})
}

func runNoteShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	root, err := a.load()
	if err != nil {
		return err
	}
	target, err := resolveArg(root, args[0])
	if err != nil {
		return err
	}
	if !target.todo.HasNote() {
		return fmt.Errorf("todo %s: %w", target.path, todo.ErrNoNote)
	}
	n, err := a.store.Notes().Load(target.todo.NoteHash())
	if err != nil {
		return err
	}

	if noteShowRaw {
		a.printf("%s\n", internalstrings.TrimTrailingNewlines(n.Content()))
		return nil
	}
	rendered := markdown.Render(ui.TerminalWidth(), 0, a.renderer.Color(), []byte(n.Content()))
	a.printf("%s\n", rendered)
	return nil
}

func runNoteEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if err := a.store.EditNote(target.todo); err != nil {
			return fmt.Errorf("todo %s: %w", target.path, err)
		}
		a.printf("Noted %s: %s\n", target.path, target.todo.NoteHash())
		return nil
	})
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if !target.todo.HasNote() {
			return fmt.Errorf("todo %s: %w", target.path, todo.ErrNoNote)
		}
		if err := a.store.RemoveNote(target.todo); err != nil {
			return err
		}
		a.printf("Removed note from %s: %s\n", target.path, target.todo.Message)
		return nil
	})
}
