package main

import (
	"fmt"
	"strconv"

	"github.com/amonks/tdo/todo"
	"github.com/spf13/cobra"
)

var prioCmd = &cobra.Command{
	Use:   "prio",
	Short: "Change todo priorities",
	Long: `Change todo priorities.

Priorities run from 1 (highest) to 9 (lowest); 0 means unset and sorts after
everything else. The todo moves to keep its list ordered.`,
}

var prioUpCmd = &cobra.Command{
	Use:   "up <path>",
	Short: "Raise a todo's priority by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrio(cmd, args[0], func(arr *todo.Array, index int) (int, error) {
			return arr.IncreasePriority(index)
		})
	},
}

var prioDownCmd = &cobra.Command{
	Use:   "down <path>",
	Short: "Lower a todo's priority by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrio(cmd, args[0], func(arr *todo.Array, index int) (int, error) {
			return arr.DecreasePriority(index)
		})
	},
}

var prioSetCmd = &cobra.Command{
	Use:   "set <path> <priority>",
	Short: "Set a todo's priority",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrioSet,
}

func init() {
	rootCmd.AddCommand(prioCmd)
	prioCmd.AddCommand(prioUpCmd, prioDownCmd, prioSetCmd)
}

func runPrioSet(cmd *cobra.Command, args []string) error {
	priority, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid priority %q: %w", args[1], todo.ErrInvalidPriority)
	}
	if err := todo.ValidatePriority(priority); err != nil {
		return err
	}
	return runPrio(cmd, args[0], func(arr *todo.Array, index int) (int, error) {
		return arr.SetPriority(index, priority)
	})
}

func runPrio(cmd *cobra.Command, arg string, change func(arr *todo.Array, index int) (int, error)) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	return a.update(func(root *todo.List) error {
		target, err := resolveArg(root, arg)
		if err != nil {
			return err
		}
		if _, err := change(target.arr, target.index); err != nil {
			return err
		}
		t := target.todo
		a.printf("Priority %s (%s) %s: %s\n", priorityLabel(t.Priority()), todo.PriorityName(t.Priority()), target.currentPath(), t.Message)
		return nil
	})
}

func priorityLabel(p int) string {
	if p == todo.PriorityUnset {
		return "-"
	}
	return strconv.Itoa(p)
}
