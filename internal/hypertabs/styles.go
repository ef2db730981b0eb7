package hypertabs

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan
	ColorAccent    = lipgloss.Color("#F59E0B") // Amber

	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorError   = lipgloss.Color("#EF4444") // Red

	ColorText       = lipgloss.Color("#E5E7EB") // Light gray
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Muted gray
	ColorBorder     = lipgloss.Color("#374151") // Dark gray
	ColorHighlight  = lipgloss.Color("#374151") // Selection
	ColorOnPrimary  = lipgloss.Color("#FFFFFF")
	ColorBackground = lipgloss.Color("#1F2937")
)

// Tab header styles, one pair per tab style.
var (
	tabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	pillStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorHighlight).
			Padding(0, 1).
			MarginRight(1)

	pillActiveStyle = lipgloss.NewStyle().
			Foreground(ColorOnPrimary).
			Background(ColorPrimary).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	underlineActiveStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				Underline(true).
				Padding(0, 1)

	verticalTabStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				BorderLeft(true).
				BorderStyle(lipgloss.HiddenBorder()).
				PaddingRight(1)

	verticalTabActiveStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true).
				BorderLeft(true).
				BorderStyle(lipgloss.ThickBorder()).
				BorderForeground(ColorPrimary).
				PaddingRight(1)

	tabRuleStyle = lipgloss.NewStyle().Foreground(ColorBorder)
)

// Accordion styles
var (
	accordionHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				PaddingLeft(1)

	accordionCursorStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Background(ColorHighlight).
				Bold(true).
				PaddingLeft(1)

	accordionBodyStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				PaddingLeft(1).
				MarginLeft(2)

	controlStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)
)

// Wizard styles
var (
	markerDoneStyle    = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	markerCurrentStyle = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	markerOpenStyle    = lipgloss.NewStyle().Foreground(ColorText)
	markerLockedStyle  = lipgloss.NewStyle().Foreground(ColorBorder)
	connectorStyle     = lipgloss.NewStyle().Foreground(ColorBorder)
	connectorDoneStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	stepTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorBorder).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1)
)

// Scroll-spy styles
var (
	navStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			PaddingLeft(2)

	navActiveStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	navBoxStyle = lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorBorder).
			MarginRight(1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)
)

// Shared styles
var (
	placeholderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Italic(true)

	contentErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError)

	emptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	jumpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	jumpMatchStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// colorOr returns c as a lipgloss color, or fallback when c is empty.
func colorOr(c string, fallback lipgloss.Color) lipgloss.Color {
	if c == "" {
		return fallback
	}
	return lipgloss.Color(c)
}
