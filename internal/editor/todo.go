package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	"github.com/amonks/tdo/todo"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// Message is the todo message.
	Message string
	// Priority is the stored priority (0=unset, 1-9).
	Priority int
	// Done is the todo's own done flag.
	Done bool
	// HasDependency hides the note body; a todo with subtasks has no note.
	HasDependency bool
	// Note is the current note text.
	Note string
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t *todo.Todo, noteText string) TodoData {
	return TodoData{
		Message:       t.Message,
		Priority:      t.Priority(),
		Done:          t.Marked(),
		HasDependency: t.HasDependency(),
		Note:          noteText,
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`message = {{ printf "%q" .Message }}
priority = {{ .Priority }} # 1=highest ... 9=lowest, 0=unset
done = {{ .Done }}
{{- if .HasDependency }}
# this todo has subtasks, so it cannot carry a note
{{- else }}
---
{{ .Note }}
{{- end }}
`))

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
type ParsedTodo struct {
	Message  string `toml:"message"`
	Priority int    `toml:"priority"`
	Done     bool   `toml:"done"`
	Note     string
}

// ParseTodoTOML parses the TOML content from the editor.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Message = strings.TrimSpace(parsed.Message)
	parsed.Note = strings.TrimSpace(body)

	if parsed.Message == "" {
		return nil, todo.ErrEmptyMessage
	}
	if err := todo.ValidateMessage(parsed.Message); err != nil {
		return nil, err
	}
	if err := todo.ValidatePriority(parsed.Priority); err != nil {
		return nil, err
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

func createTodoTempFile() (*os.File, error) {
	return os.CreateTemp("", "tdo-todo-*.toml")
}

// EditTodo opens the editor prefilled with data and returns the parsed result.
func (c Command) EditTodo(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := createTodoTempFile()
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	if err := tmpfile.Close(); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	edited, err := c.EditContent(content, tmpPath)
	if err != nil {
		return nil, err
	}

	return ParseTodoTOML(edited)
}
