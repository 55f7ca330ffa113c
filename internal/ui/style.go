// Package ui renders todos for the terminal.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	urgentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	priorityStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	unsetStyle    = lipgloss.NewStyle().Faint(true)
	markerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	indexStyle    = lipgloss.NewStyle().Bold(true)
)

func ansiEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of stdout, or 80 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Renderer styles output, or leaves it plain when color is off.
type Renderer struct {
	color bool
}

// NewRenderer returns a renderer that colors output when stdout is a
// terminal and NO_COLOR is unset.
func NewRenderer() Renderer {
	return Renderer{color: ansiEnabled()}
}

// PlainRenderer returns a renderer that never colors output.
func PlainRenderer() Renderer {
	return Renderer{}
}

func (r Renderer) style(s lipgloss.Style, value string) string {
	if !r.color {
		return value
	}
	return s.Render(value)
}

// Color reports whether the renderer styles its output.
func (r Renderer) Color() bool {
	return r.color
}
