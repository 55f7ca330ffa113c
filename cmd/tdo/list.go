package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/amonks/tdo/internal/listflags"
	"github.com/amonks/tdo/internal/ui"
	"github.com/amonks/tdo/todo"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list [path]",
	Aliases: []string{"ls"},
	Short:   "List todos, or the subtasks of a todo",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runList,
}

var (
	listTree bool
	listJSON bool
)

var sortCmd = &cobra.Command{
	Use:   "sort [path]",
	Short: "Sort todos, or the subtasks of a todo, by priority",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSort,
}

func init() {
	rootCmd.AddCommand(listCmd, sortCmd)

	listflags.AddTreeFlag(listCmd, &listTree)
	listflags.AddJSONFlag(listCmd, &listJSON)
}

func optionalPath(args []string) (todoPath, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return parseTodoPath(args[0])
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	prefix, err := optionalPath(args)
	if err != nil {
		return err
	}
	root, err := a.load()
	if err != nil {
		return err
	}
	list, err := subList(root, prefix)
	if err != nil {
		return err
	}

	if listJSON {
		return encodeJSON(a.out, jsonTodos(a.store, list, prefix))
	}
	if list.Len() == 0 {
		a.printf("No todos found.\n")
		return nil
	}
	if listTree {
		a.printf("%s", a.renderer.Tree(list, ui.TerminalWidth()))
		return nil
	}
	a.printf("%s", a.renderer.Table(list))
	return nil
}

func runSort(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	prefix, err := optionalPath(args)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		list, err := subList(root, prefix)
		if err != nil {
			return err
		}
		list.Undone.Sort()
		list.Done.Sort()
		a.printf("Sorted %d todos\n", list.Len())
		return nil
	})
}

// todoJSON is the --json shape of a todo.
type todoJSON struct {
	Path       string     `json:"path"`
	Message    string     `json:"message"`
	Priority   int        `json:"priority"`
	Done       bool       `json:"done"`
	Note       string     `json:"note,omitempty"`
	NoteHash   string     `json:"note_hash,omitempty"`
	Dependency string     `json:"dependency,omitempty"`
	Subtasks   []todoJSON `json:"subtasks,omitempty"`
}

type noteReader interface {
	NoteContent(t *todo.Todo) string
}

func jsonTodos(notes noteReader, list *todo.List, prefix todoPath) []todoJSON {
	out := make([]todoJSON, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		t, _ := list.At(i)
		path := prefix.child(i)
		item := todoJSON{
			Path:       path.String(),
			Message:    t.Message,
			Priority:   t.Priority(),
			Done:       t.Done(),
			NoteHash:   t.NoteHash(),
			Note:       notes.NoteContent(t),
			Dependency: t.DependencyName(),
		}
		if deps := t.Dependencies(); deps != nil {
			item.Subtasks = jsonTodos(notes, deps, path)
		}
		out = append(out, item)
	}
	return out
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
