package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Truncate shortens s to width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width == 1 {
		return "…"
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Divider creates a horizontal divider.
func Divider(width int, char string) string {
	if char == "" {
		char = "─"
	}
	return SubtleStyle.Render(strings.Repeat(char, max(width, 0)))
}

// Spread places left and right on one line of the given width.
func Spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", gap) + right
}

// Table renders rows under headers with columns sized to their content.
func Table(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = TableHeaderStyle.Width(widths[i]).Render(h)
	}
	b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))

	for _, row := range rows {
		b.WriteString("\n")
		for i := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = TableCellStyle.Width(widths[i]).Render(cell)
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
	}
	return b.String()
}
