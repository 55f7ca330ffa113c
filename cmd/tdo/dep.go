package main

import (
	"fmt"

	"github.com/amonks/tdo/todo"
	"github.com/spf13/cobra"
)

var depCmd = &cobra.Command{
	Use:     "dep",
	Aliases: []string{"sub"},
	Short:   "Manage the subtask list of a todo",
	Long: `Manage the subtask list of a todo.

A todo with subtasks is done once every subtask is done. Subtasks are added
with "tdo add --in <path>".`,
}

var depAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Give a todo an empty subtask list, replacing its note",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepAdd,
}

var depRmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a todo's subtask list",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepRm,
}

func init() {
	rootCmd.AddCommand(depCmd)
	depCmd.AddCommand(depAddCmd, depRmCmd)
}

func runDepAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if err := a.store.AddDependency(target.todo); err != nil {
			return fmt.Errorf("todo %s: %w", target.path, err)
		}
		a.printf("Added subtasks to %s: %s\n", target.path, target.todo.DependencyName())
		return nil
	})
}

func runDepRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, args[0])
		if err != nil {
			return err
		}
		if !target.todo.HasDependency() {
			return fmt.Errorf("todo %s: %w", target.path, errNoSubtasks)
		}
		a.store.RemoveDependency(target.todo)
		a.printf("Removed subtasks from %s: %s\n", target.path, target.todo.Message)
		return nil
	})
}
