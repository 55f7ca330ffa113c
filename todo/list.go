package todo

// List is a todo list split into undone and done todos. Nested lists reached
// through dependencies are owned by the todo that references them.
type List struct {
	Undone Array
	Done   Array
}

// NewList returns an empty list.
func NewList() *List {
	return &List{}
}

// Add appends t to the undone todos. Call Undone.Reorder afterwards to
// place it by priority.
func (l *List) Add(t *Todo) int {
	l.Undone.Push(t)
	return l.Undone.Len() - 1
}

// Len returns the number of todos in both partitions.
func (l *List) Len() int {
	return l.Undone.Len() + l.Done.Len()
}

// Locate maps an index over the undone todos followed by the done todos to
// the partition holding it and the index within that partition.
func (l *List) Locate(index int) (*Array, int, error) {
	if err := checkIndex(index, l.Len()); err != nil {
		return nil, 0, err
	}
	if index < l.Undone.Len() {
		return &l.Undone, index, nil
	}
	return &l.Done, index - l.Undone.Len(), nil
}

// At returns the todo at index over undone followed by done.
func (l *List) At(index int) (*Todo, error) {
	arr, i, err := l.Locate(index)
	if err != nil {
		return nil, err
	}
	return arr.At(i), nil
}

// Remove deletes the todo at index over undone followed by done.
func (l *List) Remove(index int) (*Todo, error) {
	arr, i, err := l.Locate(index)
	if err != nil {
		return nil, err
	}
	return arr.Remove(i)
}

// FixUndone moves every undone todo whose own done flag is set to the end of
// the done todos, keeping their relative order. It only repairs the
// partition once; call it after toggling done flags in place.
func (l *List) FixUndone() {
	kept := l.Undone.todos[:0]
	for _, t := range l.Undone.todos {
		if t.Marked() {
			l.Done.Push(t)
			continue
		}
		kept = append(kept, t)
	}
	clear(l.Undone.todos[len(kept):])
	l.Undone.todos = kept
}

// FixDone moves every done todo whose own done flag is cleared back to the
// undone todos and reorders each one into place.
func (l *List) FixDone() {
	kept := l.Done.todos[:0]
	var reopened []*Todo
	for _, t := range l.Done.todos {
		if !t.Marked() {
			reopened = append(reopened, t)
			continue
		}
		kept = append(kept, t)
	}
	clear(l.Done.todos[len(kept):])
	l.Done.todos = kept

	for _, t := range reopened {
		l.Undone.Reorder(l.Add(t))
	}
}

// Display returns the display form of the undone todos followed by the done
// todos.
func (l *List) Display() []string {
	return append(l.Undone.Display(), l.Done.Display()...)
}
