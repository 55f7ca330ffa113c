package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/amonks/tdo/todo"
	"github.com/muesli/reflow/wordwrap"
)

// TableHeaders are the column headers used by Table.
var TableHeaders = []string{"#", "DONE", "PRI", "MESSAGE", "ATTACHED"}

// Priority renders a stored priority, with unset shown as "-".
func (r Renderer) Priority(p int) string {
	switch {
	case p == todo.PriorityUnset:
		return r.style(unsetStyle, "-")
	case p <= 2:
		return r.style(urgentStyle, strconv.Itoa(p))
	default:
		return r.style(priorityStyle, strconv.Itoa(p))
	}
}

// Check renders the effective done state as a checkbox.
func (r Renderer) Check(t *todo.Todo) string {
	if t.Done() {
		return "[x]"
	}
	return "[ ]"
}

// Message renders a todo's message, struck through once it is done.
func (r Renderer) Message(t *todo.Todo) string {
	if t.Done() {
		return r.style(doneStyle, t.Message)
	}
	return t.Message
}

// Attachment describes what is attached to a todo.
func Attachment(t *todo.Todo) string {
	switch {
	case t.HasNote():
		return "note"
	case t.HasDependency():
		deps := t.Dependencies()
		return fmt.Sprintf("%d/%d done", deps.Done.Len(), deps.Len())
	default:
		return ""
	}
}

// Table renders a list as a table, undone todos first, numbered from 1.
func (r Renderer) Table(list *todo.List) string {
	rows := make([][]string, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		t, _ := list.At(i)
		rows = append(rows, []string{
			r.style(indexStyle, strconv.Itoa(i+1)),
			r.Check(t),
			r.Priority(t.Priority()),
			r.Message(todoWithTruncatedMessage(t)),
			r.style(markerStyle, Attachment(t)),
		})
	}
	return FormatTable(TableHeaders, rows)
}

func todoWithTruncatedMessage(t *todo.Todo) *todo.Todo {
	truncated := TruncateTableCell(t.Message)
	if truncated == t.Message {
		return t
	}
	clone := *t
	clone.Message = truncated
	return &clone
}

// Tree renders a list and every nested dependency list with ASCII art,
// wrapping messages to width.
func (r Renderer) Tree(list *todo.List, width int) string {
	var b strings.Builder
	r.writeTree(&b, list, "", "", width)
	return b.String()
}

func (r Renderer) writeTree(b *strings.Builder, list *todo.List, label, prefix string, width int) {
	count := list.Len()
	for i := 0; i < count; i++ {
		t, _ := list.At(i)
		isLast := i == count-1

		connector := "├── "
		childPrefix := prefix + "│   "
		if isLast {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		if label == "" {
			connector = ""
			childPrefix = ""
		}

		path := strconv.Itoa(i + 1)
		if label != "" {
			path = label + "." + path
		}

		head := fmt.Sprintf("%s%s%s %s [%s]%s", prefix, connector, r.style(indexStyle, path), r.Check(t), r.Priority(t.Priority()), r.style(markerStyle, t.Marker()))
		r.writeWrapped(b, head, t, childPrefix, width)

		if deps := t.Dependencies(); deps != nil {
			nextPrefix := childPrefix
			if label == "" {
				nextPrefix = "  "
			}
			r.writeTree(b, deps, path, nextPrefix, width)
		}
	}
}

func (r Renderer) writeWrapped(b *strings.Builder, head string, t *todo.Todo, indent string, width int) {
	headWidth := len([]rune(stripStyles(head)))
	available := width - headWidth
	if available < 20 {
		available = 20
	}

	lines := strings.Split(wordwrap.String(t.Message, available), "\n")
	for i, line := range lines {
		if i == 0 {
			b.WriteString(head)
		} else {
			b.WriteString(indent)
			b.WriteString(strings.Repeat(" ", max(headWidth-len([]rune(indent)), 0)))
		}
		if t.Done() {
			line = r.style(doneStyle, line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// stripStyles removes ANSI escape sequences.
func stripStyles(input string) string {
	var builder strings.Builder
	inEscape := false
	for i := 0; i < len(input); i++ {
		char := input[i]
		if inEscape {
			if char == 'm' {
				inEscape = false
			}
			continue
		}
		if char == '\x1b' {
			inEscape = true
			continue
		}
		builder.WriteByte(char)
	}
	return builder.String()
}
