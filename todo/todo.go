package todo

import (
	"fmt"

	"github.com/amonks/tdo/note"
)

// Todo is a single task.
type Todo struct {
	// Message is the task text. It must not contain newlines.
	Message string

	priority   int
	done       bool
	attachment attachment
}

// New returns an undone todo with no attachment. The priority is clamped
// with ClampPriority.
func New(message string, priority int) *Todo {
	return &Todo{
		Message:  message,
		priority: ClampPriority(priority),
	}
}

// Priority returns the stored priority, 0 meaning unset.
func (t *Todo) Priority() int {
	return t.priority
}

// ComparisonPriority returns the priority used for ordering: the stored
// priority, except that unset counts as 10 so it sorts last.
func (t *Todo) ComparisonPriority() int {
	if t.priority == PriorityUnset {
		return unsetComparison
	}
	return t.priority
}

// IncreasePriority makes the todo one step more urgent. Unset becomes 9;
// priority 1 stays 1.
func (t *Todo) IncreasePriority() {
	if t.ComparisonPriority() > PriorityHighest {
		t.priority = t.ComparisonPriority() - 1
	} else {
		t.priority = PriorityHighest
	}
}

// DecreasePriority makes the todo one step less urgent. Priority 9 wraps to
// unset, and unset stays unset.
func (t *Todo) DecreasePriority() {
	if t.ComparisonPriority() < PriorityLowest {
		t.priority++
	} else {
		t.priority = PriorityUnset
	}
}

// SetPriority stores p after clamping it with ClampPriority.
func (t *Todo) SetPriority(p int) {
	t.priority = ClampPriority(p)
}

// Marked reports the todo's own done flag, ignoring any dependency.
func (t *Todo) Marked() bool {
	return t.done
}

// Done reports whether the todo counts as done. A todo whose dependency list
// already has a done item is done exactly when that list has nothing left
// undone; otherwise its own flag decides.
func (t *Todo) Done() bool {
	if deps := t.Dependencies(); deps != nil && deps.Done.Len() != 0 {
		return deps.Undone.Len() == 0
	}
	return t.done
}

// SetDone sets the todo's own done flag.
func (t *Todo) SetDone(done bool) {
	t.done = done
}

// ToggleDone flips the todo's own done flag.
func (t *Todo) ToggleDone() {
	t.done = !t.done
}

// SetMessage replaces the message.
func (t *Todo) SetMessage(message string) error {
	if err := ValidateMessage(message); err != nil {
		return err
	}
	t.Message = message
	return nil
}

// HasNote reports whether a note is attached.
func (t *Todo) HasNote() bool {
	return t.attachment.kind == attachNote
}

// NoteHash returns the attached note's hash, or "" without a note.
func (t *Todo) NoteHash() string {
	if !t.HasNote() {
		return ""
	}
	return t.attachment.ref
}

// HasDependency reports whether a dependency list is attached.
func (t *Todo) HasDependency() bool {
	return t.attachment.kind == attachDependency
}

// DependencyName returns the dependency's file name (including the .todo
// suffix), or "" without a dependency.
func (t *Todo) DependencyName() string {
	if !t.HasDependency() {
		return ""
	}
	return t.attachment.ref
}

// Dependencies returns the nested list owned by the todo, or nil without a
// dependency.
func (t *Todo) Dependencies() *List {
	if !t.HasDependency() {
		return nil
	}
	return t.attachment.deps
}

// Hash identifies the todo by its priority and message. New dependency names
// are derived from it.
func (t *Todo) Hash() string {
	return note.Hash(fmt.Sprintf("%d %s", t.priority, t.Message))
}

// Display renders the todo for people rather than storage:
//
//	[x] [1]>message
//
// The first box is the effective done state; the marker after the priority
// is '>' for a note, '-' for a dependency, and a space otherwise.
func (t *Todo) Display() string {
	check := " "
	if t.Done() {
		check = "x"
	}
	return fmt.Sprintf("[%s] [%d]%s%s", check, t.priority, t.Marker(), t.Message)
}

// Marker returns the one-character attachment marker used by Display.
func (t *Todo) Marker() string {
	switch t.attachment.kind {
	case attachNote:
		return ">"
	case attachDependency:
		return "-"
	default:
		return " "
	}
}

func dependencyNameFor(hash string) string {
	return hash + DependencySuffix
}
