// Package listflags defines flags shared by commands that print todos.
package listflags

import "github.com/spf13/cobra"

// AddJSONFlag adds a shared --json flag.
func AddJSONFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("json", false, "Output as JSON")
		return
	}

	cmd.Flags().BoolVar(target, "json", false, "Output as JSON")
}

// AddTreeFlag adds a shared --tree flag.
func AddTreeFlag(cmd *cobra.Command, target *bool) {
	if target == nil {
		cmd.Flags().Bool("tree", false, "Show subtasks as a tree")
		return
	}

	cmd.Flags().BoolVar(target, "tree", false, "Show subtasks as a tree")
}
