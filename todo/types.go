// Package todo implements a priority-ordered todo list stored as plain text.
//
// Each todo occupies one line of its list file:
//
//	[<priority>] <message>
//	[<priority>]><note-hash> <message>
//	[<priority>]><name>.todo <message>
//
// A leading '-' on the priority marks the todo done. A todo may carry either a
// note (free text stored by content hash) or a dependency (a nested list of
// sub-todos stored in its own file), never both.
//
// The public API is split three ways:
//   - Todo for a single record, its priority rules, and its line format
//   - Array and List for the sorted, partitioned collections
//   - Store for everything that touches the filesystem
package todo

// Priority bounds. PriorityUnset sorts after every other priority.
const (
	PriorityUnset   = 0
	PriorityHighest = 1
	PriorityLowest  = 9

	// unsetComparison is the ordering weight of PriorityUnset.
	unsetComparison = 10
)

// DependencySuffix is appended to a dependency's hash to form its file name.
const DependencySuffix = ".todo"

// PriorityName returns a short label for a priority.
func PriorityName(p int) string {
	switch {
	case p == PriorityUnset:
		return "unset"
	case p == PriorityHighest:
		return "highest"
	case p == PriorityLowest:
		return "lowest"
	case p > PriorityHighest && p < PriorityLowest:
		return "normal"
	default:
		return "unknown"
	}
}

type attachmentKind int

const (
	attachNone attachmentKind = iota
	attachNote
	attachDependency
)

// attachment holds at most one of a note hash or a dependency. Keeping both
// behind a single kind makes a todo with a note and a dependency unrepresentable.
type attachment struct {
	kind attachmentKind

	// ref is the note hash or the dependency name, depending on kind.
	ref string

	// deps is the owned nested list for attachDependency.
	deps *List
}

func noteAttachment(hash string) attachment {
	if hash == "" {
		return attachment{}
	}
	return attachment{kind: attachNote, ref: hash}
}

func dependencyAttachment(name string, deps *List) attachment {
	if deps == nil {
		deps = NewList()
	}
	return attachment{kind: attachDependency, ref: name, deps: deps}
}
