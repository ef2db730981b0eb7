// Package tui hosts a panel container in a terminal: the bubbletea program
// around the root container, the plain and JSON renderings used when no
// terminal is attached, and the small pieces of host chrome.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#06B6D4") // Cyan

	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorWarning = lipgloss.Color("#F59E0B") // Amber
	ColorError   = lipgloss.Color("#EF4444") // Red

	ColorText       = lipgloss.Color("#E5E7EB") // Light gray
	ColorTextMuted  = lipgloss.Color("#9CA3AF") // Muted gray
	ColorBorder     = lipgloss.Color("#374151") // Dark gray
	ColorBackground = lipgloss.Color("#1F2937") // Dark background
)
