package todo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrReadFailed is returned when a line matches none of the todo line forms.
	ErrReadFailed = errors.New("line is not a todo")

	// ErrNoteEmpty is returned when a note would be blank.
	ErrNoteEmpty = errors.New("note is empty")

	// ErrAlreadyExists is returned when adding a dependency to a todo that has one.
	ErrAlreadyExists = errors.New("dependency already exists")

	// ErrDependencyCreationFailed is returned when a dependency's file cannot be created.
	ErrDependencyCreationFailed = errors.New("dependency creation failed")

	// ErrNoNote is returned when a note operation targets a todo without a note.
	ErrNoNote = errors.New("todo has no note")

	// ErrIndexOutOfRange is returned when an index does not address a todo.
	ErrIndexOutOfRange = errors.New("todo index out of range")

	// ErrInvalidMessage is returned when a message would break the line format.
	ErrInvalidMessage = errors.New("message cannot contain newlines")

	// ErrEmptyMessage is returned when a message is empty.
	ErrEmptyMessage = errors.New("message cannot be empty")

	// ErrInvalidPriority is returned when a priority is outside 0-9.
	ErrInvalidPriority = errors.New("priority must be between 0 and 9")
)

// ValidateMessage checks that message fits on a single line.
func ValidateMessage(message string) error {
	if strings.ContainsAny(message, "\r\n") {
		return ErrInvalidMessage
	}
	return nil
}

// ValidatePriority checks that p is a storable priority.
func ValidatePriority(p int) error {
	if p < PriorityUnset || p > PriorityLowest {
		return fmt.Errorf("%w: got %d", ErrInvalidPriority, p)
	}
	return nil
}

// ClampPriority maps an arbitrary integer onto the stored priority range.
// Values of ten or more become PriorityUnset, negative values become
// PriorityHighest, everything else is kept.
func ClampPriority(p int) int {
	switch {
	case p >= unsetComparison:
		return PriorityUnset
	case p == 0:
		return PriorityUnset
	case p < 0:
		return PriorityHighest
	default:
		return p
	}
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, length)
	}
	return nil
}
