package tui

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode selects how `hypertabs view` presents a container.
type OutputMode int

const (
	// ModeTUI runs the interactive bubbletea program.
	ModeTUI OutputMode = iota

	// ModePlain prints one rendered frame.
	ModePlain

	// ModeJSON prints the resolved container state.
	ModeJSON
)

// String returns the string representation of the output mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "unknown"
	}
}

// Detector determines the appropriate output mode.
type Detector struct {
	forceMode *OutputMode
	noColor   bool
	isTTY     func() bool
}

// NewDetector creates a new output mode detector.
func NewDetector() *Detector {
	return &Detector{isTTY: stdoutIsTTY}
}

// ForceMode forces a specific output mode.
func (d *Detector) ForceMode(mode OutputMode) *Detector {
	d.forceMode = &mode
	return d
}

// NoColor disables color output.
func (d *Detector) NoColor(disable bool) *Detector {
	d.noColor = disable
	return d
}

// Detect determines the appropriate output mode.
func (d *Detector) Detect() OutputMode {
	if d.forceMode != nil {
		return *d.forceMode
	}

	if env := os.Getenv("HYPERTABS_OUTPUT"); env != "" {
		if mode, ok := ParseOutputMode(env); ok {
			return mode
		}
	}

	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return ModePlain
	}

	if !d.isTTY() {
		return ModePlain
	}
	return ModeTUI
}

// ShouldUseColor determines if color should be used.
func (d *Detector) ShouldUseColor() bool {
	if d.noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return d.isTTY()
}

func stdoutIsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalSize returns terminal dimensions, 80x24 when unknown.
func TerminalSize() (width, height int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80, 24
	}
	return w, h
}

// ParseOutputMode parses an output mode name.
func ParseOutputMode(s string) (OutputMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tui":
		return ModeTUI, true
	case "plain":
		return ModePlain, true
	case "json":
		return ModeJSON, true
	default:
		return ModeTUI, false
	}
}
