// Package main implements the tdo CLI tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tdo",
	Short: "A priority-ordered todo list with notes and subtasks",
	Long: `A priority-ordered todo list with notes and subtasks.

Todos are addressed by their position in "tdo list", counting from 1, with
undone todos before done ones. A dotted path such as 2.1 addresses the first
subtask of todo 2.`,
	SilenceUsage: true,
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.SetErrPrefix(fmt.Sprintf("%s:", rootCmd.Use))
}
