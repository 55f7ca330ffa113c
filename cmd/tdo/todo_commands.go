package main

import (
	"strings"

	"github.com/amonks/tdo/internal/editor"
	internalstrings "github.com/amonks/tdo/internal/strings"
	"github.com/amonks/tdo/note"
	"github.com/amonks/tdo/todo"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <message>...",
	Short: "Add a todo",
	Long: `Add a todo.

The words of the message are joined with spaces. Use --in to add a subtask to
a todo that has subtasks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addPriority int
	addIn       todoPath
)

var doneCmd = &cobra.Command{
	Use:   "done <path>",
	Short: "Toggle whether a todo is done",
	Args:  cobra.ExactArgs(1),
	RunE:  runDone,
}

var rmCmd = &cobra.Command{
	Use:     "rm <path>",
	Aliases: []string{"delete"},
	Short:   "Delete a todo with its note or subtasks",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

var editCmd = &cobra.Command{
	Use:   "edit <path>",
	Short: "Edit a todo in $EDITOR",
	Long: `Edit a todo in $EDITOR.

The editor opens a TOML header with the message, priority, and done flag,
followed by the note after a "---" line. Clearing the note removes it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(addCmd, doneCmd, rmCmd, editCmd)

	addCmd.Flags().IntVarP(&addPriority, "priority", "p", todo.PriorityUnset, "Priority (1=highest, 9=lowest, 0=unset)")
	addCmd.Flags().Var(&addIn, "in", "Add as a subtask of the todo at this path")
}

func runAdd(cmd *cobra.Command, args []string) error {
	message := internalstrings.NormalizeWhitespace(strings.Join(args, " "))
	if message == "" {
		return todo.ErrEmptyMessage
	}
	if err := todo.ValidateMessage(message); err != nil {
		return err
	}
	if err := todo.ValidatePriority(addPriority); err != nil {
		return err
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		list, err := subList(root, addIn)
		if err != nil {
			return err
		}
		t := todo.New(message, addPriority)
		index := list.Undone.Reorder(list.Add(t))
		a.printf("Added %s: %s\n", addIn.child(index), t.Message)
		return nil
	})
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		target.todo.ToggleDone()
		target.list.FixUndone()
		target.list.FixDone()

		verb := "Reopened"
		if target.todo.Marked() {
			verb = "Done"
		}
		a.printf("%s %s: %s\n", verb, target.currentPath(), target.todo.Message)
		return nil
	})
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if _, err := target.arr.Remove(target.index); err != nil {
			return err
		}
		if err := a.store.RemoveNote(target.todo); err != nil {
			a.logger.Warn("could not remove note", "error", err)
		}
		a.store.RemoveDependency(target.todo)
		a.printf("Deleted %s: %s\n", target.path, target.todo.Message)
		return nil
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		t := target.todo
		current := a.store.NoteContent(t)

		parsed, err := a.editor.EditTodo(editor.DataFromTodo(t, current))
		if err != nil {
			return err
		}
		if err := applyEdit(a.store, target, parsed, current); err != nil {
			return err
		}
		a.printf("Updated %s: %s\n", target.currentPath(), t.Message)
		return nil
	})
}

// applyEdit copies the edited fields onto the target todo, keeping its list
// ordered and partitioned.
func applyEdit(store *todo.Store, tgt target, parsed *editor.ParsedTodo, currentNote string) error {
	t := tgt.todo
	if err := t.SetMessage(parsed.Message); err != nil {
		return err
	}
	if t.Priority() != parsed.Priority {
		if _, err := tgt.arr.SetPriority(tgt.index, parsed.Priority); err != nil {
			return err
		}
	}
	if parsed.Done != t.Marked() {
		t.SetDone(parsed.Done)
		tgt.list.FixUndone()
		tgt.list.FixDone()
	}

	if t.HasDependency() || parsed.Note == strings.TrimSpace(currentNote) {
		return nil
	}
	if parsed.Note == "" {
		return store.RemoveNote(t)
	}
	return store.SetNote(t, note.New(parsed.Note))
}
