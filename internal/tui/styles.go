package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle renders the host title bar.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorBackground).
			Padding(0, 1)

	// SubtleStyle is used for dividers and secondary text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// MetaStyle renders title bar facts such as mode and address.
	MetaStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// StatusStyle renders informational status lines.
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// StatusWarnStyle renders warnings surfaced from the log.
	StatusWarnStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// StatusErrorStyle renders failures.
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)

	// TableHeaderStyle renders table column titles.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	// TableCellStyle renders table cells.
	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorText)
)

// ModeBadge renders the effective mode, highlighted when it differs from
// the configured one.
func ModeBadge(configured, effective string) string {
	if configured == effective {
		return MetaStyle.Render(effective)
	}
	return StatusWarnStyle.Render(effective + " (from " + configured + ")")
}
