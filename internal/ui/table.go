package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tableCellMaxWidth = 60
const tableCellEllipsis = "..."

// FormatTable renders headers and rows as an aligned table. Column widths
// ignore ANSI styling.
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}

	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if displayLen := lipgloss.Width(cell); displayLen > widths[i] {
				widths[i] = displayLen
			}
		}
	}

	var builder strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			builder.WriteString(cell)
			if i == len(row)-1 {
				builder.WriteByte('\n')
				continue
			}
			padding := widths[i] - lipgloss.Width(cell)
			builder.WriteString(strings.Repeat(" ", padding+2))
		}
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}

	return builder.String()
}

// TruncateTableCell limits plain text to the table cell width.
func TruncateTableCell(value string) string {
	runes := []rune(value)
	if len(runes) <= tableCellMaxWidth {
		return value
	}
	return string(runes[:tableCellMaxWidth-len(tableCellEllipsis)]) + tableCellEllipsis
}
