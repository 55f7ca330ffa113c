package todo

import (
	"iter"
	"slices"
)

// Array is a sequence of todos kept in ascending ComparisonPriority order.
//
// Push and direct priority changes can break the order; Reorder repairs it
// for a single element without re-sorting the rest.
type Array struct {
	todos []*Todo
}

// Len returns the number of todos.
func (a *Array) Len() int {
	return len(a.todos)
}

// At returns the todo at index. It panics when index is out of range.
func (a *Array) At(index int) *Todo {
	return a.todos[index]
}

// Get returns the todo at index, or ErrIndexOutOfRange.
func (a *Array) Get(index int) (*Todo, error) {
	if err := checkIndex(index, len(a.todos)); err != nil {
		return nil, err
	}
	return a.todos[index], nil
}

// All iterates over the todos with their indices.
func (a *Array) All() iter.Seq2[int, *Todo] {
	return slices.All(a.todos)
}

// Push appends t without checking its priority.
func (a *Array) Push(t *Todo) {
	a.todos = append(a.todos, t)
}

// Remove deletes the todo at index and returns it. Later todos shift left.
func (a *Array) Remove(index int) (*Todo, error) {
	if err := checkIndex(index, len(a.todos)); err != nil {
		return nil, err
	}
	t := a.todos[index]
	a.todos = slices.Delete(a.todos, index, index+1)
	return t, nil
}

// Sort orders every todo by ComparisonPriority, keeping equal priorities in
// their current order.
func (a *Array) Sort() {
	slices.SortStableFunc(a.todos, func(x, y *Todo) int {
		return x.ComparisonPriority() - y.ComparisonPriority()
	})
}

// IsSorted reports whether the todos are in ComparisonPriority order.
func (a *Array) IsSorted() bool {
	return slices.IsSortedFunc(a.todos, func(x, y *Todo) int {
		return x.ComparisonPriority() - y.ComparisonPriority()
	})
}

// Reorder moves the todo at index to restore the sort order after its
// priority changed, and returns its new index. Every other todo must already
// be in order; only the one at index is moved.
//
// Equal priorities keep the moved todo after its peers. The scan is linear.
func (a *Array) Reorder(index int) int {
	if len(a.todos) < 2 {
		return index
	}

	priority := a.todos[index].ComparisonPriority()
	if priority < a.todos[0].ComparisonPriority() {
		return a.MoveIndex(index, 0)
	}

	if index+1 < len(a.todos) && priority > a.todos[index+1].ComparisonPriority() {
		// Moving later: find the last slot whose successor outranks it.
		low, high := index+1, len(a.todos)-1
		for middle := low; middle < high; middle++ {
			if a.fitsAfter(priority, middle) {
				return a.MoveIndex(index, middle)
			}
		}
		return a.MoveIndex(index, high)
	}

	// Moving earlier or staying: land just after the first slot it fits behind.
	for middle := 0; middle < index; middle++ {
		if a.fitsAfter(priority, middle) {
			return a.MoveIndex(index, middle+1)
		}
	}
	return index
}

func (a *Array) fitsAfter(priority, index int) bool {
	return priority < a.todos[index+1].ComparisonPriority() &&
		priority >= a.todos[index].ComparisonPriority()
}

// MoveIndex moves the todo at from to position to by swapping neighbours,
// so everything between the two positions keeps its relative order. It
// returns the landing index, which is always to.
func (a *Array) MoveIndex(from, to int) int {
	if from < to {
		for i := from; i < to; i++ {
			a.todos[i], a.todos[i+1] = a.todos[i+1], a.todos[i]
		}
	} else {
		for i := from - 1; i >= to; i-- {
			a.todos[i], a.todos[i+1] = a.todos[i+1], a.todos[i]
		}
	}
	return to
}

// IncreasePriority raises the priority of the todo at index, reorders it, and
// returns its new index.
func (a *Array) IncreasePriority(index int) (int, error) {
	t, err := a.Get(index)
	if err != nil {
		return index, err
	}
	t.IncreasePriority()
	return a.Reorder(index), nil
}

// DecreasePriority lowers the priority of the todo at index, reorders it, and
// returns its new index.
func (a *Array) DecreasePriority(index int) (int, error) {
	t, err := a.Get(index)
	if err != nil {
		return index, err
	}
	t.DecreasePriority()
	return a.Reorder(index), nil
}

// SetPriority sets the priority of the todo at index, reorders it, and
// returns its new index.
func (a *Array) SetPriority(index, priority int) (int, error) {
	t, err := a.Get(index)
	if err != nil {
		return index, err
	}
	t.SetPriority(priority)
	return a.Reorder(index), nil
}

// Display returns the display form of every todo.
func (a *Array) Display() []string {
	lines := make([]string, 0, len(a.todos))
	for _, t := range a.todos {
		lines = append(lines, t.Display())
	}
	return lines
}
